package domain

import (
	"reflect"
	"testing"
)

func TestMergeWeekAppendsDays(t *testing.T) {
	p := MealPlan{
		Days: []DayPlan{{Day: 1, DayName: "Monday"}, {Day: 2, DayName: "Tuesday"}},
	}

	p.MergeWeek(WeekSlice{
		Days: []DayPlan{{Day: 8, DayName: "Monday"}, {Day: 9, DayName: "Tuesday"}},
	})

	if len(p.Days) != 4 {
		t.Fatalf("len(days) = %d, want 4", len(p.Days))
	}
	if p.Days[2].Day != 8 || p.Days[3].Day != 9 {
		t.Errorf("appended days out of order: %+v", p.Days[2:])
	}
}

func TestMergeWeekDeduplicatesShoppingList(t *testing.T) {
	p := MealPlan{
		ShoppingList: []string{"oats", "eggs", "spinach"},
	}

	p.MergeWeek(WeekSlice{
		ShoppingList: []string{"eggs", "rice", "oats", "salmon"},
	})

	want := []string{"oats", "eggs", "spinach", "rice", "salmon"}
	if !reflect.DeepEqual(p.ShoppingList, want) {
		t.Errorf("shoppingList = %v, want %v", p.ShoppingList, want)
	}

	seen := map[string]int{}
	for _, item := range p.ShoppingList {
		seen[item]++
		if seen[item] > 1 {
			t.Errorf("duplicate item %q after merge", item)
		}
	}
}

func TestMergeWeekEmptySlice(t *testing.T) {
	p := MealPlan{
		Days:         []DayPlan{{Day: 1}},
		ShoppingList: []string{"oats"},
	}

	p.MergeWeek(WeekSlice{})

	if len(p.Days) != 1 || len(p.ShoppingList) != 1 {
		t.Errorf("merge of empty slice changed plan: days=%d list=%v", len(p.Days), p.ShoppingList)
	}
}
