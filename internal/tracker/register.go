package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/ashureev/boj-daily/internal/domain"
	"github.com/ashureev/boj-daily/internal/solvedac"
)

// RegisterInput describes a registration request.
type RegisterInput struct {
	// ID is the storage key. Empty means the handle itself is the key.
	ID          string
	Handle      string
	DisplayName string
	// AllowReplace lets an existing ID switch to a new handle (chat mode).
	// When false an existing ID is rejected with ErrAlreadyRegistered.
	AllowReplace bool
}

// RegisterStatus describes what a registration did.
type RegisterStatus int

const (
	// Created means a new user was stored.
	Created RegisterStatus = iota
	// Unchanged means the caller was already registered with this handle.
	Unchanged
	// Changed means the caller switched from PreviousHandle to a new handle.
	Changed
)

func (s RegisterStatus) String() string {
	switch s {
	case Created:
		return "created"
	case Unchanged:
		return "unchanged"
	default:
		return "changed"
	}
}

// Registration is the result of Register.
type Registration struct {
	Status         RegisterStatus
	PreviousHandle string
	User           *domain.User
	Stats          solvedac.Stats
}

// Register validates the handle upstream and stores the user with the
// current solved count as its baseline.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Registration, error) {
	handle := strings.TrimSpace(in.Handle)
	if handle == "" {
		return nil, ErrEmptyHandle
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = handle
	}

	out := s.stats.Lookup(ctx, handle)
	if !out.OK() {
		return nil, fmt.Errorf("%w: %s", ErrHandleNotFound, handle)
	}

	existing, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if existing != nil && !in.AllowReplace {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, id)
	}

	now := s.now()
	user := &domain.User{
		ID:            id,
		Handle:        handle,
		DisplayName:   strings.TrimSpace(in.DisplayName),
		SolvedCount:   out.Stats.SolvedCount,
		RegisteredAt:  now,
		LastCheckedAt: now,
	}

	reg := &Registration{Status: Created, User: user, Stats: out.Stats}
	if existing != nil {
		reg.PreviousHandle = existing.Handle
		user.RegisteredAt = existing.RegisteredAt
		if user.DisplayName == "" {
			user.DisplayName = existing.DisplayName
		}
		if existing.Handle == handle {
			reg.Status = Unchanged
			user.CurrentStreak = existing.CurrentStreak
			user.LastSolvedDate = existing.LastSolvedDate
		} else {
			reg.Status = Changed
		}
	}

	if err := s.repo.UpsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.logger.Info("User registered", "user_id", id, "handle", handle, "status", reg.Status.String())
	return reg, nil
}
