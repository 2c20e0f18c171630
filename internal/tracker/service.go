// Package tracker runs evaluation cycles over the tracked population and
// manages registrations.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ashureev/boj-daily/internal/domain"
	"github.com/ashureev/boj-daily/internal/progress"
	"github.com/ashureev/boj-daily/internal/solvedac"
	"github.com/ashureev/boj-daily/internal/store"
)

// Options tunes a Service. Zero values select defaults.
type Options struct {
	Policy   progress.LapsePolicy
	Location *time.Location
	Now      func() time.Time
	Logger   *slog.Logger
}

// Service coordinates the store, the stats client and the progress engine.
// Cycles are not coordinated across processes: the last writer wins.
type Service struct {
	repo   store.Repository
	stats  solvedac.Lookuper
	policy progress.LapsePolicy
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

// NewService wires a tracker.
func NewService(repo store.Repository, stats solvedac.Lookuper, opts Options) (*Service, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	if stats == nil {
		return nil, errors.New("stats client is required")
	}
	s := &Service{
		repo:   repo,
		stats:  stats,
		policy: opts.Policy,
		loc:    opts.Location,
		now:    opts.Now,
		logger: opts.Logger,
	}
	if s.policy == "" {
		s.policy = progress.LapseLazy
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Today returns the current calendar date in the configured timezone.
func (s *Service) Today() domain.Date {
	return domain.DateOf(s.now().In(s.loc))
}

// Cycle is the outcome of one evaluation pass.
type Cycle struct {
	ID      string
	Date    domain.Date
	Results []progress.Result
}

// Daily ranks the cycle by today's delta.
func (c *Cycle) Daily() progress.Daily {
	return progress.RankDaily(c.Results)
}

// AllTime ranks the cycle by total solved.
func (c *Cycle) AllTime() []progress.Entry {
	return progress.RankAllTime(c.Results)
}

func subjectOf(u *domain.User) progress.Subject {
	return progress.Subject{UserID: u.ID, Handle: u.Handle, Name: u.Name()}
}

// RunCycle reads every user, evaluates them one by one against fresh remote
// stats and writes the population back once. A failed lookup only affects
// that user, whose stored record is left untouched.
func (s *Service) RunCycle(ctx context.Context) (*Cycle, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	now := s.now()
	cycle := &Cycle{
		ID:      uuid.NewString(),
		Date:    domain.DateOf(now.In(s.loc)),
		Results: make([]progress.Result, 0, len(users)),
	}
	logger := s.logger.With("cycle_id", cycle.ID, "date", cycle.Date.String())
	logger.Info("Evaluation cycle started", "users", len(users))

	updated := make([]*domain.User, 0, len(users))
	for _, u := range users {
		state := progress.StreakOf(u)

		out := s.stats.Lookup(ctx, u.Handle)
		if !out.OK() {
			res := progress.Failed(u.SolvedCount, state, cycle.Date)
			res.Subject = subjectOf(u)
			cycle.Results = append(cycle.Results, res)
			logger.Warn("Lookup failed, user skipped", "user_id", u.ID, "handle", u.Handle, "outcome", out.Kind.String())
			continue
		}

		res := progress.Evaluate(u.SolvedCount, out.Stats.SolvedCount, state, cycle.Date)
		res.Subject = subjectOf(u)
		res.Tier = out.Stats.Tier
		cycle.Results = append(cycle.Results, res)

		u.SolvedCount = res.TotalSolved
		s.policy.Persist(res.Next, cycle.Date).Apply(u)
		u.Touch(now)
		updated = append(updated, u)
	}

	if err := s.repo.SaveUsers(ctx, updated); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}

	daily := cycle.Daily()
	logger.Info("Evaluation cycle complete",
		"success", daily.SuccessCount,
		"total", daily.Total,
		"failed", len(users)-len(updated))
	return cycle, nil
}

// List returns users in registration order.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

// Remove deletes the user with the given key.
func (s *Service) Remove(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	if !deleted {
		return ErrUserNotFound
	}
	s.logger.Info("User removed", "user_id", id)
	return nil
}

// ResetResult reports one user's re-baseline.
type ResetResult struct {
	User *domain.User
	OK   bool
}

// Reset re-baselines every user's solved count to the current remote value,
// so the next cycle measures from now. Streaks are kept. Users whose lookup
// fails are reported and left untouched.
func (s *Service) Reset(ctx context.Context) ([]ResetResult, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	now := s.now()
	results := make([]ResetResult, 0, len(users))
	updated := make([]*domain.User, 0, len(users))
	for _, u := range users {
		out := s.stats.Lookup(ctx, u.Handle)
		if !out.OK() {
			results = append(results, ResetResult{User: u})
			continue
		}
		u.SolvedCount = out.Stats.SolvedCount
		u.Touch(now)
		updated = append(updated, u)
		results = append(results, ResetResult{User: u, OK: true})
	}

	if err := s.repo.SaveUsers(ctx, updated); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}
	s.logger.Info("Solved counts reset", "reset", len(updated), "total", len(users))
	return results, nil
}

// Profile is a read-only view of one user.
type Profile struct {
	User   *domain.User
	Stats  solvedac.Stats
	Live   bool // Stats came from a successful lookup
	Streak int  // streak as reported today
}

// Profile returns the stored record with live stats. Nothing is written.
func (s *Service) Profile(ctx context.Context, id string) (*Profile, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	p := &Profile{
		User:   u,
		Stats:  solvedac.Stats{SolvedCount: u.SolvedCount},
		Streak: progress.Reported(progress.StreakOf(u), s.Today()),
	}
	if out := s.stats.Lookup(ctx, u.Handle); out.OK() {
		p.Stats = out.Stats
		p.Live = true
	}
	return p, nil
}
