package domain

// Everything in this file is untrusted structured data parsed out of
// model output. There is no validation beyond "it decoded as JSON":
// fields the model omits stay at their zero values.

// Profile holds the nutrition targets the model computes once during the
// conversation. It is treated as caller-supplied ground truth for week
// continuation requests and is never recomputed locally.
type Profile struct {
	BMR            float64  `json:"bmr"`
	TDEE           float64  `json:"tdee"`
	TargetCalories float64  `json:"targetCalories"`
	Protein        float64  `json:"protein"`
	Carbs          float64  `json:"carbs"`
	Fat            float64  `json:"fat"`
	Fiber          float64  `json:"fiber"`
	Goal           string   `json:"goal"`
	Warnings       []string `json:"warnings,omitempty"`
}

// Meal is a single named meal within a day.
type Meal struct {
	Name         string   `json:"name"`
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
	Fiber        float64  `json:"fiber"`
	PrepTime     string   `json:"prepTime"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// DayMeals groups the five fixed meal slots of a day.
type DayMeals struct {
	Breakfast Meal `json:"breakfast"`
	Snack1    Meal `json:"snack1"`
	Lunch     Meal `json:"lunch"`
	Snack2    Meal `json:"snack2"`
	Dinner    Meal `json:"dinner"`
}

// Totals are summed macros for a day.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// DayPlan is one day of a meal plan. Day numbering is contiguous across
// weeks; day names cycle Monday through Sunday regardless of date.
type DayPlan struct {
	Day         int      `json:"day"`
	DayName     string   `json:"dayName"`
	Meals       DayMeals `json:"meals"`
	DailyTotals Totals   `json:"dailyTotals"`
}

// MealPlan is the full plan captured from the model: profile, days so
// far, general recommendations, and a deduplicated shopping list.
type MealPlan struct {
	Profile         Profile   `json:"profile"`
	Days            []DayPlan `json:"days"`
	Recommendations []string  `json:"recommendations,omitempty"`
	ShoppingList    []string  `json:"shoppingList"`
}

// WeekSlice is the incremental payload of a week continuation: seven new
// days plus their shopping list, without profile or recommendations.
type WeekSlice struct {
	Days         []DayPlan `json:"days"`
	ShoppingList []string  `json:"shoppingList"`
}

// MergeWeek appends a continuation slice to the plan. Days are appended
// in order; shopping-list items are set-unioned, keeping the first
// occurrence of each item string.
func (p *MealPlan) MergeWeek(week WeekSlice) {
	p.Days = append(p.Days, week.Days...)

	seen := make(map[string]struct{}, len(p.ShoppingList)+len(week.ShoppingList))
	merged := make([]string, 0, len(p.ShoppingList)+len(week.ShoppingList))
	for _, list := range [][]string{p.ShoppingList, week.ShoppingList} {
		for _, item := range list {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			merged = append(merged, item)
		}
	}
	p.ShoppingList = merged
}
