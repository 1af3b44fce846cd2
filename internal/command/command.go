// Package command contains the CLI commands that operate on the stored
// university registry.
//
// COMMAND PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// The router expects handlers with the signature:
//
//	func(w io.Writer, args []string) error
//
// That signature has no room for dependencies like the store. A factory
// accepts the dependencies once at startup and returns a handler that
// closes over them:
//
//	router.Handle("enroll", "<studentID> <courseID>", command.Enroll(store, policy))
//
// Every mutating command follows the same cycle: load the snapshot, rebuild
// the registry (which re-validates everything), apply one domain operation,
// save a fresh snapshot. A rejected operation saves nothing.
package command

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aanand-mishra/university/internal/storage"
	"github.com/aanand-mishra/university/internal/university"
	"github.com/aanand-mishra/university/internal/utils/response"
)

// Handler runs one command, writing its output to w.
type Handler func(w io.Writer, args []string) error

// ErrUsage marks a command invoked with the wrong arguments.
var ErrUsage = errors.New("usage")

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// Router maps command names to handlers.
type Router struct {
	handlers map[string]Handler
	help     map[string]string
}

func NewRouter() *Router {
	return &Router{handlers: make(map[string]Handler), help: make(map[string]string)}
}

// Handle registers h under name. synopsis is shown by Usage.
func (r *Router) Handle(name, synopsis string, h Handler) {
	r.handlers[name] = h
	r.help[name] = synopsis
}

// Run dispatches args[0] with the remaining arguments.
func (r *Router) Run(w io.Writer, args []string) error {
	if len(args) == 0 {
		return usagef("no command given\n%s", r.Usage())
	}
	h, ok := r.handlers[args[0]]
	if !ok {
		return usagef("unknown command %q\n%s", args[0], r.Usage())
	}
	return h(w, args[1:])
}

// Usage lists every registered command, sorted by name.
func (r *Router) Usage() string {
	names := make([]string, 0, len(r.help))
	for n := range r.help {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("commands:\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  %-14s %s\n", n, r.help[n])
	}
	return b.String()
}

// load rebuilds the registry from whatever the store holds.
func load(store storage.Storage, policy *university.SalaryPolicy) (*university.Registry, error) {
	snap, err := store.LoadSnapshot()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	r, err := university.Restore(snap, policy)
	if err != nil {
		return nil, fmt.Errorf("load: stored records are inconsistent: %w", err)
	}
	return r, nil
}

// mutate loads the registry, applies op and saves the result. Nothing is
// saved when op fails.
func mutate(store storage.Storage, policy *university.SalaryPolicy, op func(*university.Registry) error) error {
	r, err := load(store, policy)
	if err != nil {
		return err
	}
	if err := op(r); err != nil {
		return err
	}
	if err := store.SaveSnapshot(r.Snapshot()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func ok(w io.Writer, data any) error {
	return response.WriteJSON(w, response.OK(data))
}
