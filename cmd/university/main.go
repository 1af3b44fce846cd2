// main is the entry point of the university command-line tool.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (and the environment)
//  2. Initialise the logger
//  3. Open (and set up) the SQLite database
//  4. Register every command
//  5. Run the command named on the command line and print its JSON result
//
// RUNNING:
//
//	go run ./cmd/university --config=config/local.yaml import config/roster.yaml
//	go run ./cmd/university --config=config/local.yaml payroll
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/university courses
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/aanand-mishra/university/internal/command"
	"github.com/aanand-mishra/university/internal/config"
	"github.com/aanand-mishra/university/internal/storage/sqlite"
	"github.com/aanand-mishra/university/internal/utils/response"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad also parses the flags, so flag.Args() below holds the
	// command and its arguments.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs go to stderr; stdout is reserved for command output.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Debug("starting university", slog.String("env", cfg.Env))

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	store, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	log.Debug("storage initialised", slog.String("path", cfg.StoragePath))

	policy := cfg.Payroll.SalaryPolicy()

	// ── 4. Register Commands ──────────────────────────────────────────────
	// Every handler is a factory: it receives the store and the salary
	// policy once and returns the function the router calls.
	router := command.NewRouter()

	router.Handle("import", "<roster.yaml>  replace the registry with a roster file", command.Import(store, policy))
	router.Handle("export", "print the registry as a roster file", command.Export(store, policy))
	router.Handle("courses", "list courses with their students and professors", command.Courses(store, policy))
	router.Handle("details", "print the details of every person", command.Details(store, policy))
	router.Handle("enroll", "<studentID> <courseID>", command.Enroll(store, policy))
	router.Handle("drop", "<studentID> <courseID>  end an enrollment and its grade", command.Drop(store, policy))
	router.Handle("teach", "<employeeID> <courseID>", command.Teach(store, policy))
	router.Handle("grade", "<employeeID> <studentID> <courseID> <grade>", command.Grade(store, policy))
	router.Handle("grades", "[studentID]", command.Grades(store, policy))
	router.Handle("payroll", "salary and tax paid per professor", command.Payroll(store, policy))
	router.Handle("pay-tax", "<employeeID> <amount>", command.PayTax(store, policy))
	router.Handle("remove-course", "<courseID>", command.RemoveCourse(store, policy))
	router.Handle("diagram", "[objects]  PlantUML class or object diagram", command.Diagram(store, policy))

	// ── 5. Run ────────────────────────────────────────────────────────────
	if err := router.Run(os.Stdout, flag.Args()); err != nil {
		log.Error("command failed", slog.String("error", err.Error()))
		_ = response.WriteJSON(os.Stdout, response.GeneralError(err))

		// os.Exit skips deferred calls.
		store.Close()
		if errors.Is(err, command.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
