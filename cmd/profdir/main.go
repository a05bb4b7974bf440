// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/profdir/profdir/internal/config"
	"github.com/profdir/profdir/internal/imaging"
	"github.com/profdir/profdir/internal/service"
	"github.com/profdir/profdir/internal/store"
	"github.com/profdir/profdir/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "profdir - Professor Directory\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [args]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Commands:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  list-professors                         List all professors\n")
		_, _ = fmt.Fprintf(os.Stderr, "  list-users                              List all accounts\n")
		_, _ = fmt.Fprintf(os.Stderr, "  add-user <name> <password> <role>       Create an account (admin|student)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  del-user <name>                         Delete an account\n")
		_, _ = fmt.Fprintf(os.Stderr, "  add-professor <name> <department>       Create a professor record\n")
		_, _ = fmt.Fprintf(os.Stderr, "  del-professor <name>                    Delete a professor and their schedules\n")
		_, _ = fmt.Fprintf(os.Stderr, "  schedule <name>                         Show a professor's weekly schedule\n")
		_, _ = fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFDIR_DB_PATH          SQLite database path (default: ./data/profdir.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFDIR_PICTURES_DIR     Picture storage directory (default: ./data/pictures)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFDIR_REMEMBER_FILE    Remember-me file path (default: ./data/remember.json)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFDIR_BOOTSTRAP_FILE   Account registry imported on startup (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFDIR_LOG_LEVEL        Log level: debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFDIR_DO_SEED          Create the default admin account (default: true)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{
			Version:   appVersion,
			GitCommit: appGitCommit,
			BuildTime: appBuildTime,
		}
		_, _ = fmt.Println("profdir " + info.String())
		os.Exit(0)
	}

	if err := run(flag.Args()); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Debug("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	pictures := imaging.NewProcessor(cfg.PicturesDir)
	if _, err := pictures.EnsureDefaultAvatar(); err != nil {
		slog.Warn("failed to write default avatar", "error", err)
	}

	credentials := service.NewCredentials(db, cfg.RememberFile)
	professors := service.NewProfessors(db, pictures, service.NewNotifier())
	schedules := service.NewSchedules(db)

	if cfg.BootstrapFile != "" {
		n, err := credentials.ImportBootstrap(ctx, cfg.BootstrapFile)
		if err != nil {
			return fmt.Errorf("importing bootstrap accounts: %w", err)
		}
		if n > 0 {
			slog.Info("bootstrap import complete", "imported", n)
		}
	}

	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("no command given")
	}

	command, rest := args[0], args[1:]
	switch command {
	case "list-professors":
		return listProfessors(ctx, professors)
	case "list-users":
		return listUsers(ctx, credentials)
	case "add-user":
		if len(rest) != 3 {
			return fmt.Errorf("usage: add-user <name> <password> <role>")
		}
		return credentials.Add(ctx, rest[0], rest[1], "", rest[2])
	case "del-user":
		if len(rest) != 1 {
			return fmt.Errorf("usage: del-user <name>")
		}
		return credentials.Delete(ctx, rest[0])
	case "add-professor":
		if len(rest) != 2 {
			return fmt.Errorf("usage: add-professor <name> <department>")
		}
		return professors.Add(ctx, service.AddProfessorParams{
			Name:       rest[0],
			Department: rest[1],
		})
	case "del-professor":
		if len(rest) != 1 {
			return fmt.Errorf("usage: del-professor <name>")
		}
		return professors.Delete(ctx, rest[0])
	case "schedule":
		if len(rest) != 1 {
			return fmt.Errorf("usage: schedule <name>")
		}
		return showSchedule(ctx, professors, schedules, rest[0])
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func listProfessors(ctx context.Context, professors *service.Professors) error {
	all, err := professors.All(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDEPARTMENT\tCONTACT\tEMAIL\tPICTURE")
	for _, p := range all {
		picture := p.Picture
		if !p.HasPicture() {
			picture = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.Department, valueOrDash(p.Contact), valueOrDash(p.Email), picture)
	}
	return w.Flush()
}

func listUsers(ctx context.Context, credentials *service.Credentials) error {
	users, err := credentials.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "USERNAME\tROLE\tEMAIL")
	for _, u := range users {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", u.Username, u.Role, valueOrDash(u.Email))
	}
	return w.Flush()
}

func showSchedule(ctx context.Context, professors *service.Professors, schedules *service.Schedules, name string) error {
	prof, err := professors.ByName(ctx, name)
	if err != nil {
		return err
	}

	slots, err := schedules.ForProfessor(ctx, prof.ID)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		_, _ = fmt.Printf("%s has no scheduled classes\n", prof.Name)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DAY\tSTART\tEND\tSUBJECT")
	for _, s := range slots {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Day, s.StartTime, s.EndTime, s.Subject)
	}
	return w.Flush()
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
