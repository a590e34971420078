package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/me/taskdeck/internal/config"
	"github.com/me/taskdeck/internal/logging"
	"github.com/me/taskdeck/internal/session"
	"github.com/me/taskdeck/pkg/taskapi"
)

var (
	flagServer    string
	flagDB        string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger   *slog.Logger
	sessions *session.Store
	client   *taskapi.Client
)

// NewRootCmd creates the root cobra command for the taskdeck CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taskdeck",
		Short: "taskdeck — task management from the terminal",
		Long:  "taskdeck creates, lists, completes, and deletes tasks against a taskdeck API server.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if flagServer != "" {
				cfg.APIURL = flagServer
			}
			if flagDB != "" {
				cfg.DBPath = flagDB
			}
			if flagLogLevel != "" {
				cfg.LogLevel = flagLogLevel
			}
			if flagLogFormat != "" {
				cfg.LogFormat = flagLogFormat
			}
			if flagDebug {
				cfg.LogLevel = "debug"
			}

			logger = logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

			dbPath := cfg.DBPath
			if dbPath == "" {
				dbPath, err = session.DefaultDBPath()
				if err != nil {
					return err
				}
			}
			kv, err := session.NewSQLiteKV(dbPath, logger)
			if err != nil {
				return err
			}
			sessions = session.NewStore(kv, logger)
			if err := sessions.Initialize(cmd.Context()); err != nil {
				return err
			}

			apiCfg := taskapi.DefaultConfig().WithBaseURL(cfg.APIURL).WithTimeout(cfg.HTTPTimeout)
			client = taskapi.New(apiCfg, sessions, logger)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if sessions != nil {
				return sessions.Close()
			}
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", "", "taskdeck API URL (or TASKDECK_API_URL env)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "session database path (default ~/.taskdeck/taskdeck.db)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newProfileCmd(),
		newTaskCmd(),
		newUsersCmd(),
	)

	return root
}
