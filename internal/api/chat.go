package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ashureev/boj-daily/internal/middleware"
	"github.com/ashureev/boj-daily/internal/report"
	"github.com/ashureev/boj-daily/internal/tracker"
)

// HandleParam is the skill parameter carrying the BOJ handle.
const HandleParam = "boj_id"

// Tracker is the part of tracker.Service the chat endpoints use.
type Tracker interface {
	Register(ctx context.Context, in tracker.RegisterInput) (*tracker.Registration, error)
	RunCycle(ctx context.Context) (*tracker.Cycle, error)
	Profile(ctx context.Context, id string) (*tracker.Profile, error)
	Remove(ctx context.Context, id string) error
}

// ChatHandler serves the Kakao skill endpoints.
type ChatHandler struct {
	tracker Tracker
	logger  *slog.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(t Tracker, logger *slog.Logger) *ChatHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatHandler{tracker: t, logger: logger}
}

// RegisterRoutes registers the skill routes. A panic below this point is
// answered with the generic retry reply inside a valid envelope.
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Route("/kakao", func(r chi.Router) {
		r.Use(middleware.Recover(h.logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			SkillText(w, report.MsgRetry)
		})))

		r.Post("/register", h.Register)
		r.Post("/status", h.Status)
		r.Post("/ranking", h.Ranking)
		r.Post("/me", h.Me)
		r.Post("/unregister", h.Unregister)
	})
}

func (h *ChatHandler) decode(w http.ResponseWriter, r *http.Request) (*SkillRequest, bool) {
	req, err := decodeSkill(r)
	if err != nil {
		h.logger.Warn("Rejected skill request", "path", r.URL.Path, "error", err)
		SkillText(w, report.MsgRetry)
		return nil, false
	}
	return req, true
}

// Register links the caller to a BOJ handle.
func (h *ChatHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	handle := req.Param(HandleParam)

	reg, err := h.tracker.Register(r.Context(), tracker.RegisterInput{
		ID:           req.CallerID(),
		Handle:       handle,
		AllowReplace: true,
	})
	switch {
	case errors.Is(err, tracker.ErrEmptyHandle):
		SkillText(w, report.MsgHandleRequired)
	case errors.Is(err, tracker.ErrHandleNotFound):
		SkillText(w, report.HandleNotFound(handle))
	case err != nil:
		h.logger.Error("Registration failed", "user_id", req.CallerID(), "handle", handle, "error", err)
		SkillText(w, report.MsgRetry)
	default:
		SkillText(w, report.Registration(reg))
	}
}

func (h *ChatHandler) cycle(w http.ResponseWriter, r *http.Request) (*tracker.Cycle, bool) {
	cycle, err := h.tracker.RunCycle(r.Context())
	switch {
	case errors.Is(err, tracker.ErrNoUsers):
		SkillText(w, report.MsgNoUsers)
		return nil, false
	case err != nil:
		h.logger.Error("Evaluation cycle failed", "path", r.URL.Path, "error", err)
		SkillText(w, report.MsgRetry)
		return nil, false
	}
	return cycle, true
}

// Status runs a cycle and replies with the daily check-in.
func (h *ChatHandler) Status(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.decode(w, r); !ok {
		return
	}
	if cycle, ok := h.cycle(w, r); ok {
		SkillText(w, report.DailyStatus(cycle.Date, cycle.Daily(), report.Kakao))
	}
}

// Ranking runs a cycle and replies with the all-time ranking.
func (h *ChatHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.decode(w, r); !ok {
		return
	}
	if cycle, ok := h.cycle(w, r); ok {
		SkillText(w, report.AllTime(cycle.Date, cycle.AllTime(), report.Kakao))
	}
}

// Me replies with the caller's own profile.
func (h *ChatHandler) Me(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	p, err := h.tracker.Profile(r.Context(), req.CallerID())
	switch {
	case errors.Is(err, tracker.ErrUserNotFound):
		SkillText(w, report.MsgNotRegistered)
	case err != nil:
		h.logger.Error("Profile lookup failed", "user_id", req.CallerID(), "error", err)
		SkillText(w, report.MsgRetry)
	default:
		SkillText(w, report.Profile(p))
	}
}

// Unregister removes the caller.
func (h *ChatHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	err := h.tracker.Remove(r.Context(), req.CallerID())
	switch {
	case errors.Is(err, tracker.ErrUserNotFound):
		SkillText(w, report.MsgNotRegistered)
	case err != nil:
		h.logger.Error("Unregister failed", "user_id", req.CallerID(), "error", err)
		SkillText(w, report.MsgRetry)
	default:
		SkillText(w, report.MsgUnregistered)
	}
}
