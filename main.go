// Command hoppingstones plays Hopping Stones in the terminal.
//
// It supports three commands:
//  1. "play" (default) runs a game between two players sharing the keyboard
//  2. "layouts" lists or prints the board layouts found in the layout directory
//  3. "sessions" lists or deletes the recorded sessions
//
// Flags and HOPPINGSTONES_* environment variables (also read from a .env
// file) control the layout and session directories and debug logging.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wricardo/mcp-training/hoppingstones/game/config"
	"github.com/wricardo/mcp-training/hoppingstones/game/engine"
	"github.com/wricardo/mcp-training/hoppingstones/game/service"
	"github.com/wricardo/mcp-training/hoppingstones/game/session"
	"github.com/wricardo/mcp-training/hoppingstones/transport/terminal"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Hopping Stones"
)

// services bundles what the commands need
type services struct {
	game     service.GameService
	sessions *session.Manager
	logger   *zap.Logger
}

// defaultLayoutDir returns the XDG config location for layout files
func defaultLayoutDir() string {
	return filepath.Join(xdg.ConfigHome, "hoppingstones", "layouts")
}

// defaultSessionsDir returns the XDG data location for session records
func defaultSessionsDir() string {
	return filepath.Join(xdg.DataHome, "hoppingstones", "sessions")
}

// main loads .env, then runs the CLI until it finishes or is interrupted.
func main() {
	// Load .env file if it exists; failures are reported once logging is up
	envErr := godotenv.Load()
	if os.IsNotExist(envErr) {
		envErr = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(envErr).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree. envErr is a .env loading error to report.
func newApp(envErr error) *cli.Command {
	var svc *services

	// setup runs before every command that needs the services
	setup := func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		logger, err := newLogger(cmd.Bool("debug"))
		if err != nil {
			return ctx, fmt.Errorf("failed to create logger: %w", err)
		}
		if envErr != nil {
			logger.Warn("error loading .env file", zap.Error(envErr))
		}

		svc, err = initializeServices(cmd.String("layout-dir"), cmd.String("sessions-dir"), logger)
		if err != nil {
			return ctx, fmt.Errorf("failed to initialize services: %w", err)
		}
		return ctx, nil
	}

	play := &cli.Command{
		Name:  "play",
		Usage: "play a game in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "layout", Aliases: []string{"l"}, Usage: "layout to play on (default layout when empty)"},
			&cli.StringFlag{Name: "first", Usage: "name of the first player", Sources: cli.EnvVars("HOPPINGSTONES_FIRST")},
			&cli.StringFlag{Name: "second", Usage: "name of the second player", Sources: cli.EnvVars("HOPPINGSTONES_SECOND")},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colours"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPlay(ctx, cmd, svc)
		},
	}

	return &cli.Command{
		Name:    "hoppingstones",
		Usage:   "a two-player game of diagonal moves",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "layout-dir",
				Usage:   "directory containing layout files",
				Value:   defaultLayoutDir(),
				Sources: cli.EnvVars("HOPPINGSTONES_LAYOUT_DIR"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Usage:   "directory where session records are kept",
				Value:   defaultSessionsDir(),
				Sources: cli.EnvVars("HOPPINGSTONES_SESSIONS_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("HOPPINGSTONES_DEBUG"),
			},
		},
		Before: setup,
		After: func(ctx context.Context, cmd *cli.Command) error {
			if svc != nil {
				_ = svc.logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			play,
			{
				Name:  "layouts",
				Usage: "list available layouts",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runListLayouts(ctx, cmd.Root().Writer, svc)
				},
				Commands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "print a layout as YAML",
						ArgsUsage: "NAME",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return runShowLayout(ctx, cmd.Root().Writer, svc, cmd.Args().First())
						},
					},
				},
			},
			{
				Name:  "sessions",
				Usage: "list recorded sessions",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runListSessions(ctx, cmd.Root().Writer, svc)
				},
				Commands: []*cli.Command{
					{
						Name:      "delete",
						Usage:     "delete a session record",
						ArgsUsage: "ID",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							id := cmd.Args().First()
							if id == "" {
								return fmt.Errorf("session id is required")
							}
							if err := svc.game.DeleteSession(ctx, id); err != nil {
								return fmt.Errorf("failed to delete session %s: %w", id, err)
							}
							fmt.Fprintf(cmd.Root().Writer, "Deleted session %s\n", id)
							return nil
						},
					},
				},
			},
		},
		DefaultCommand: "play",
	}
}

// newLogger returns a development logger in debug mode, otherwise a
// production logger that only reports warnings to stderr.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// initializeServices wires the layout and session managers and the game service.
func initializeServices(layoutDir, sessionsDir string, logger *zap.Logger) (*services, error) {
	if err := os.MkdirAll(layoutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create layout directory: %w", err)
	}

	// Create config manager first
	configManager, err := config.NewManager(layoutDir, logger.Named("layouts"))
	if err != nil {
		return nil, fmt.Errorf("failed to create layout manager: %w", err)
	}

	// Create session persistence
	persistence, err := session.NewFilePersistence(sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence, logger.Named("sessions"))

	logger.Debug("services initialized",
		zap.String("layout_dir", layoutDir),
		zap.String("sessions_dir", sessionsDir),
	)

	return &services{
		game:     service.NewGameService(sessionManager, configManager, logger.Named("service")),
		sessions: sessionManager,
		logger:   logger,
	}, nil
}

// runPlay creates a session and hands the terminal to it until the players quit.
func runPlay(ctx context.Context, cmd *cli.Command, svc *services) error {
	players := service.Players{First: cmd.String("first"), Second: cmd.String("second")}
	info, err := svc.game.CreateSession(ctx, cmd.String("layout"), players)
	if err != nil {
		return err
	}

	root := cmd.Root()
	opts := []termenv.OutputOption{}
	if cmd.Bool("no-color") {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	out := termenv.NewOutput(root.Writer, opts...)

	host := terminal.NewHost(svc.game, info.ID, root.Reader, out, svc.logger.Named("terminal"))
	runErr := host.Run(ctx)

	finishSession(svc, info.ID)
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// finishSession stores the session record and drops the running game.
// Afterwards the session is only known through its record.
func finishSession(svc *services, id string) {
	if err := svc.sessions.SaveAllSessions(); err != nil {
		svc.logger.Warn("failed to save sessions", zap.Error(err))
	}
	if err := svc.sessions.DeleteFromMemory(id); err != nil {
		svc.logger.Warn("failed to release session", zap.String("session", id), zap.Error(err))
	}
}

func runListLayouts(ctx context.Context, w io.Writer, svc *services) error {
	configs, err := svc.game.ListConfigs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list layouts: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tSTONES\tDESCRIPTION")
	for _, c := range configs {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%d\t%s\n", c.ConfigID, c.Name, c.BoardSize, c.BoardSize, c.StonesPerSide, c.Description)
	}
	return tw.Flush()
}

func runShowLayout(ctx context.Context, w io.Writer, svc *services, name string) error {
	if name == "" {
		name = config.DefaultConfigName
	}
	cfg, err := svc.game.LoadConfig(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load layout %s: %w", name, err)
	}
	data, err := engine.EncodeGameConfig(name+".yaml", cfg)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func runListSessions(ctx context.Context, w io.Writer, svc *services) error {
	records, err := svc.game.ListSessionRecords(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLAYOUT\tPLAYERS\tTURNS\tRESULT\tLAST PLAYED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s vs %s\t%d\t%s\t%s\n",
			r.ID, r.ConfigID, r.Players.First, r.Players.Second, r.Turns, result(r), r.LastAccessedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

// result describes how a recorded game ended
func result(r *service.SessionRecord) string {
	switch {
	case r.Winner != "":
		side, err := engine.ParseSide(r.Winner)
		if err != nil {
			return r.Winner + " won"
		}
		return r.Players.Name(side) + " won"
	case r.Blocked:
		return "blocked"
	default:
		return "in progress"
	}
}
