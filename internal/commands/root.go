package commands

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/balkashynov/horas/internal/auth"
	"github.com/balkashynov/horas/internal/config"
	"github.com/balkashynov/horas/internal/db"
	"github.com/balkashynov/horas/internal/logging"
	"github.com/balkashynov/horas/internal/notify"
	"github.com/balkashynov/horas/internal/tracker"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configFile string
)

// app holds everything a command needs, built once per invocation
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	store   *db.Store
	tracker *tracker.Tracker
	owner   auth.Owner
}

var rootCmd = &cobra.Command{
	Use:   "horas",
	Short: "Track work sessions and billable hours",
	Long: `horas tracks time spent on work items: start, pause, resume and finish
sessions, log time after the fact, and see day/week/month dashboards with
the value of billed hours.

Run 'horas serve' to expose the same tracker over HTTP.`,
	SilenceUsage: true,
}

// withApp wraps a command function so it runs with an open store
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.store.Close(); err != nil {
				a.log.WithError(err).Warn("error closing database")
			}
		}()
		return fn(cmd, args, a)
	}
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	log, err := logging.NewWithOutput(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	owner, err := auth.NewOwner(cfg.Owner)
	if err != nil {
		return nil, fmt.Errorf("config key owner: %w", err)
	}

	store, err := db.Open(cfg.Database.Driver, cfg.Database.DSN, log)
	if err != nil {
		return nil, err
	}

	opts := []tracker.Option{
		tracker.WithLocation(loc),
		tracker.WithLogger(log),
	}
	if cfg.Notify {
		opts = append(opts, tracker.WithFinishHook(notify.New(log).SessionFinished))
	}

	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		tracker: tracker.New(store, opts...),
		owner:   owner,
	}, nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the horas version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "horas %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ~/.config/horas/horas.yml)")
	flags.String("db", "", "sqlite path or postgres DSN")
	flags.String("driver", "", "database driver: sqlite or postgres")
	flags.String("owner", "", "owner id for local commands")
	flags.String("timezone", "", "IANA timezone for dashboards, e.g. America/Sao_Paulo")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(activeCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
