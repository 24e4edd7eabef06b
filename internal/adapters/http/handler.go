// Package httpadapter exposes the chat application over a single
// action-dispatched endpoint.
package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nutriplan/nutriplan-api/internal/app/conversation"
	"github.com/nutriplan/nutriplan-api/internal/app/weekplan"
	"github.com/nutriplan/nutriplan-api/internal/domain"
	"github.com/nutriplan/nutriplan-api/internal/observability"
)

type Server struct {
	conv *conversation.Service
	week *weekplan.Service
}

func NewServer(conv *conversation.Service, week *weekplan.Service) http.Handler {
	s := &Server{conv: conv, week: week}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/healthz", s.handleHealthz)

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatRequest struct {
	Action      string          `json:"action"`
	SessionID   string          `json:"sessionId"`
	Message     string          `json:"message"`
	Profile     *domain.Profile `json:"profile"`
	CurrentWeek int             `json:"currentWeek"`
	Preferences string          `json:"preferences"`
}

type messageResponse struct {
	Message  string           `json:"message"`
	MealPlan *domain.MealPlan `json:"mealPlan,omitempty"`
}

type planResponse struct {
	MealPlan *domain.MealPlan `json:"mealPlan"`
}

type weekResponse struct {
	Days         []domain.DayPlan `json:"days"`
	ShoppingList []string         `json:"shoppingList"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	// Every action except the stateless continuation is session-scoped.
	if req.SessionID == "" && req.Action != "generateWeek" {
		badRequest(w, "Session ID required")
		return
	}

	ctx := r.Context()
	sessionID := domain.SessionID(req.SessionID)

	switch req.Action {
	case "start":
		greeting, err := s.conv.Start(ctx, sessionID)
		if err != nil {
			internalError(ctx, w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: greeting})

	case "chat":
		if strings.TrimSpace(req.Message) == "" {
			badRequest(w, "Message required")
			return
		}
		out, err := s.conv.Chat(ctx, sessionID, req.Message)
		if err != nil {
			internalError(ctx, w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: out.Message, MealPlan: out.MealPlan})

	case "clear":
		if err := s.conv.Clear(ctx, sessionID); err != nil {
			internalError(ctx, w, err)
			return
		}
		writeJSON(w, http.StatusOK, successResponse{Success: true})

	case "getPlan":
		mealPlan, err := s.conv.Plan(ctx, sessionID)
		if err != nil && !errors.Is(err, domain.ErrPlanNotFound) {
			internalError(ctx, w, err)
			return
		}
		writeJSON(w, http.StatusOK, planResponse{MealPlan: mealPlan})

	case "generateWeek":
		if req.Profile == nil {
			badRequest(w, "Profile required")
			return
		}
		week, err := s.week.GenerateWeek(ctx, weekplan.GenerateWeekInput{
			Profile:     *req.Profile,
			CurrentWeek: req.CurrentWeek,
			Preferences: req.Preferences,
			SessionID:   sessionID,
		})
		if err != nil {
			internalError(ctx, w, err)
			return
		}
		writeJSON(w, http.StatusOK, weekResponse{Days: week.Days, ShoppingList: week.ShoppingList})

	default:
		badRequest(w, "Invalid action")
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func internalError(ctx context.Context, w http.ResponseWriter, err error) {
	observability.LoggerFromContext(ctx).Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "Failed to process request. Please try again.",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
