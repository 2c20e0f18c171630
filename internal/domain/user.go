// Package domain contains core domain types for the BOJ daily tracker.
package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User is one tracked individual and their last observed progress.
type User struct {
	// ID is the storage key: the chat platform user id, or the handle itself
	// for users registered from the batch CLI.
	ID          string `json:"id" validate:"required,max=256"`
	Handle      string `json:"handle" validate:"required,max=64"`
	DisplayName string `json:"display_name,omitempty" validate:"max=128"`

	SolvedCount    int   `json:"solved_count" validate:"gte=0"`
	CurrentStreak  int   `json:"current_streak" validate:"gte=0"`
	LastSolvedDate *Date `json:"last_solved_date,omitempty"`

	RegisteredAt  time.Time `json:"registered_at"`
	LastCheckedAt time.Time `json:"last_checked_at"`
}

// Name returns the label used when rendering the user.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Handle
}

// Validate checks field bounds and the streak/date invariant.
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("validate user %q: %w", u.ID, err)
	}
	if u.LastSolvedDate == nil && u.CurrentStreak != 0 {
		return fmt.Errorf("validate user %q: streak %d without last solved date", u.ID, u.CurrentStreak)
	}
	return nil
}

// Touch records an observation time, never moving LastCheckedAt backwards.
func (u *User) Touch(now time.Time) {
	if now.After(u.LastCheckedAt) {
		u.LastCheckedAt = now
	}
}
