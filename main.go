package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/TWRT/time-quadrant/internal/config"
	"github.com/TWRT/time-quadrant/internal/logging"
	"github.com/TWRT/time-quadrant/internal/repository"
	"github.com/TWRT/time-quadrant/internal/service"
)

type globalFlags struct {
	dbPath    string
	logLevel  string
	logFormat string
	json      bool
}

// app holds the wiring shared by every command.
type app struct {
	cfg    *config.Config
	db     *sql.DB
	logger *log.Logger
	tasks  *service.TaskService
}

func (a *app) Close() error {
	return a.db.Close()
}

func openApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = flags.dbPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = flags.logFormat
	}
	if f := cmd.Flags().Lookup("addr"); f != nil && f.Changed {
		cfg.Addr = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}

	store, err := repository.NewTaskStore(repository.NewKVRepository(db), logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init task store: %w", err)
	}

	board := service.LoadBoard(store)
	logger.Debug("state loaded", "db", cfg.DBPath, "active", len(board.Active), "completed", len(board.Completed))

	return &app{
		cfg:    cfg,
		db:     db,
		logger: logger,
		tasks:  service.NewTaskService(board, store, logger),
	}, nil
}

// wantJSON reports whether output should be machine-readable.
func wantJSON(w io.Writer, flags *globalFlags) bool {
	if flags.json {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "quadrant",
		Short:         "quadrant - urgent/important task board",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.dbPath, "db", config.DefaultDBPath, "SQLite database path")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", config.DefaultLogFormat, "log format (text, json, logfmt)")
	root.PersistentFlags().BoolVar(&flags.json, "json", false, "print JSON even on a terminal")

	root.AddCommand(
		newServeCmd(flags),
		newQuadrantsCmd(flags),
		newListCmd(flags),
		newAddCmd(flags),
		newEditCmd(flags),
		newCompleteCmd(flags),
		newDeleteCmd(flags),
		newArchiveCmd(flags),
		newClearArchiveCmd(flags),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
