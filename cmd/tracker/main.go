// Command tracker manages the local productivity tracker database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nhle/team-tracker/internal/auth"
	"github.com/nhle/team-tracker/internal/logging"
	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/internal/store"
	"github.com/nhle/team-tracker/internal/theme"
)

const usage = `usage: tracker [-config path] <command> [flags]

commands:
  migrate                          create or upgrade the database
  adduser -username NAME -pin PIN  create a user
  runrate -username NAME -days N   show points completed in the last N days
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "tracker: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("tracker", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	configPath := global.String("config", model.DefaultConfigPath(), "config file")
	if err := global.Parse(args); err != nil {
		return errUsage
	}
	if global.NArg() == 0 {
		return errUsage
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	s, err := store.NewSQLiteStore(cfg.Database.Path, log)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "migrate":
		log.Info("database ready", zap.String("path", cfg.Database.Path))
		fmt.Fprintf(out, "database ready at %s\n", cfg.Database.Path)
		return nil
	case "adduser":
		return addUser(ctx, auth.NewService(s, log, cfg.Auth.BcryptCost), rest, out)
	case "runrate":
		return runRate(ctx, s, rest, out)
	default:
		return errUsage
	}
}

func addUser(ctx context.Context, svc *auth.Service, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("username", "", "login name")
	pin := fs.String("pin", "", "login pin")
	profile := fs.String("profile", "", "display name")
	answer := fs.String("recovery-answer", "", "answer used to reset the pin")
	if err := fs.Parse(args); err != nil || *username == "" || *pin == "" {
		return errUsage
	}

	u, err := svc.CreateUser(ctx, *username, *pin, optional(*profile), optional(*answer))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created user %s (id %d)\n", u.Username, u.ID)
	return nil
}

func runRate(ctx context.Context, s store.Store, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("runrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("username", "", "login name")
	days := fs.Int("days", 7, "window length in days")
	if err := fs.Parse(args); err != nil || *username == "" || *days <= 0 {
		return errUsage
	}

	u, err := s.GetUserByUsername(ctx, *username)
	if err != nil {
		return err
	}
	if u == nil || !u.IsActive {
		return fmt.Errorf("no active user %q", *username)
	}

	to := time.Now().UTC()
	rr, err := s.GetRunRate(ctx, u.ID, to.AddDate(0, 0, -*days), to)
	if err != nil {
		return err
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	fmt.Fprintln(out, title.Render(fmt.Sprintf("%s: last %d days", u.Username, *days)))
	fmt.Fprintf(out, "completed %d tasks, %d points\n", rr.Completed, rr.TotalPoints)

	types := make([]string, 0, len(rr.ByType))
	for t := range rr.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(out, "%s %-6s %d\n", theme.TaskTypeBadge(t), t, rr.ByType[t])
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
