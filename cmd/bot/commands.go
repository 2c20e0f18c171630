package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/ashureev/boj-daily/internal/domain"
	"github.com/ashureev/boj-daily/internal/notify"
	"github.com/ashureev/boj-daily/internal/report"
	"github.com/ashureev/boj-daily/internal/tracker"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

// batchTracker is the part of tracker.Service the batch job drives.
type batchTracker interface {
	RunCycle(ctx context.Context) (*tracker.Cycle, error)
	Reset(ctx context.Context) ([]tracker.ResetResult, error)
	Register(ctx context.Context, in tracker.RegisterInput) (*tracker.Registration, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
	Today() domain.Date
}

type app struct {
	tracker  batchTracker
	notifier notify.Notifier
	out      io.Writer
	logger   *slog.Logger
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: bot <check|ranking|reset|add <handle> [name]|remove <handle>|list>")
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		usage(a.out)
		return exitUsage
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "check":
		return a.check(ctx)
	case "ranking":
		return a.ranking(ctx)
	case "reset":
		return a.reset(ctx)
	case "add":
		if len(rest) == 0 {
			usage(a.out)
			return exitUsage
		}
		return a.add(ctx, rest[0], strings.Join(rest[1:], " "))
	case "remove":
		if len(rest) != 1 {
			usage(a.out)
			return exitUsage
		}
		return a.remove(ctx, rest[0])
	case "list":
		return a.list(ctx)
	default:
		errColor.Fprintf(a.out, "unknown command %q\n", cmd)
		usage(a.out)
		return exitUsage
	}
}

// cycle runs one evaluation. ok is false when nothing should be posted.
func (a *app) cycle(ctx context.Context) (*tracker.Cycle, int, bool) {
	c, err := a.tracker.RunCycle(ctx)
	switch {
	case errors.Is(err, tracker.ErrNoUsers):
		warnColor.Fprintln(a.out, "No registered users.")
		return nil, exitOK, false
	case err != nil:
		a.logger.Error("Evaluation cycle failed", "error", err)
		errColor.Fprintf(a.out, "check failed: %v\n", err)
		return nil, exitFailure, false
	}
	return c, exitOK, true
}

// deliver posts content. A delivery failure does not undo the cycle;
// state is already persisted.
func (a *app) deliver(ctx context.Context, cycleID, content string) int {
	fmt.Fprintln(a.out, content)
	if err := a.notifier.Send(ctx, content); err != nil {
		a.logger.Error("Report delivery failed", "cycle_id", cycleID, "error", err)
		errColor.Fprintf(a.out, "delivery failed: %v\n", err)
		return exitFailure
	}
	okColor.Fprintln(a.out, "✓ report sent")
	return exitOK
}

func (a *app) check(ctx context.Context) int {
	c, code, ok := a.cycle(ctx)
	if !ok {
		return code
	}
	return a.deliver(ctx, c.ID, report.DailyStatus(c.Date, c.Daily(), report.Discord))
}

func (a *app) ranking(ctx context.Context) int {
	c, code, ok := a.cycle(ctx)
	if !ok {
		return code
	}
	return a.deliver(ctx, c.ID, report.AllTime(c.Date, c.AllTime(), report.Discord))
}

func (a *app) reset(ctx context.Context) int {
	results, err := a.tracker.Reset(ctx)
	if err != nil {
		errColor.Fprintf(a.out, "reset failed: %v\n", err)
		return exitFailure
	}
	for _, r := range results {
		if r.OK {
			okColor.Fprintf(a.out, "✓ %s: %d solved\n", r.User.Name(), r.User.SolvedCount)
		} else {
			warnColor.Fprintf(a.out, "✗ %s: lookup failed, left unchanged\n", r.User.Name())
		}
	}
	return exitOK
}

func (a *app) add(ctx context.Context, handle, name string) int {
	reg, err := a.tracker.Register(ctx, tracker.RegisterInput{Handle: handle, DisplayName: name})
	switch {
	case errors.Is(err, tracker.ErrEmptyHandle):
		usage(a.out)
		return exitUsage
	case errors.Is(err, tracker.ErrHandleNotFound):
		errColor.Fprintln(a.out, report.HandleNotFound(handle))
		return exitFailure
	case errors.Is(err, tracker.ErrAlreadyRegistered):
		warnColor.Fprintf(a.out, "%s is already registered.\n", handle)
		return exitFailure
	case err != nil:
		errColor.Fprintf(a.out, "add failed: %v\n", err)
		return exitFailure
	}
	okColor.Fprintf(a.out, "✓ added %s (%s): %d solved\n", reg.User.Name(), reg.User.Handle, reg.User.SolvedCount)
	return exitOK
}

func (a *app) remove(ctx context.Context, handle string) int {
	err := a.tracker.Remove(ctx, handle)
	switch {
	case errors.Is(err, tracker.ErrUserNotFound):
		warnColor.Fprintf(a.out, "%s is not registered.\n", handle)
		return exitFailure
	case err != nil:
		errColor.Fprintf(a.out, "remove failed: %v\n", err)
		return exitFailure
	}
	okColor.Fprintf(a.out, "✓ removed %s\n", handle)
	return exitOK
}

func (a *app) list(ctx context.Context) int {
	users, err := a.tracker.List(ctx)
	if err != nil {
		errColor.Fprintf(a.out, "list failed: %v\n", err)
		return exitFailure
	}
	fmt.Fprintln(a.out, report.UserList(users, a.tracker.Today()))
	return exitOK
}
