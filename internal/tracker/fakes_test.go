package tracker

import (
	"context"
	"errors"
	"sync"

	"github.com/ashureev/boj-daily/internal/domain"
	"github.com/ashureev/boj-daily/internal/solvedac"
)

type fakeRepo struct {
	mu      sync.Mutex
	order   []string
	users   map[string]*domain.User
	saves   int
	saveErr error
}

func newFakeRepo(users ...*domain.User) *fakeRepo {
	f := &fakeRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		_ = f.UpsertUser(context.Background(), u)
	}
	return f
}

func clone(u *domain.User) *domain.User {
	c := *u
	if u.LastSolvedDate != nil {
		d := *u.LastSolvedDate
		c.LastSolvedDate = &d
	}
	return &c
}

func (f *fakeRepo) ListUsers(_ context.Context) ([]*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.User, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, clone(f.users[id]))
	}
	return out, nil
}

func (f *fakeRepo) GetUser(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.users[id]
	if u == nil {
		return nil, nil
	}
	return clone(u), nil
}

func (f *fakeRepo) UpsertUser(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		f.order = append(f.order, u.ID)
	}
	f.users[u.ID] = clone(u)
	return nil
}

func (f *fakeRepo) SaveUsers(_ context.Context, users []*domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	for _, u := range users {
		if _, ok := f.users[u.ID]; ok {
			f.users[u.ID] = clone(u)
		}
	}
	return nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (f *fakeRepo) Ping(_ context.Context) error { return nil }
func (f *fakeRepo) Close() error                 { return nil }

func (f *fakeRepo) stored(id string) *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id]
}

// fakeStats answers lookups from a map; handles missing from the map are
// NotFound, handles in failing are TransportError.
type fakeStats struct {
	stats   map[string]solvedac.Stats
	failing map[string]bool
	calls   []string
}

func (f *fakeStats) Lookup(_ context.Context, handle string) solvedac.Outcome {
	f.calls = append(f.calls, handle)
	if f.failing[handle] {
		return solvedac.Outcome{Kind: solvedac.TransportError, Err: errors.New("timeout")}
	}
	st, ok := f.stats[handle]
	if !ok {
		return solvedac.Outcome{Kind: solvedac.NotFound}
	}
	return solvedac.Outcome{Kind: solvedac.Found, Stats: st}
}
