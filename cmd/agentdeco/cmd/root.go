package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/agentdeco/internal/agent"
	"github.com/psantana5/agentdeco/internal/config"
	"github.com/psantana5/agentdeco/internal/logging"
	"github.com/psantana5/agentdeco/internal/program"
	"github.com/psantana5/agentdeco/internal/report"
	"github.com/psantana5/agentdeco/internal/wrapper"
)

var (
	cfgFile     string
	showSummary bool
	dumpMetrics bool

	cfg    *config.Config
	logger *logging.Logger
)

// rootCmd runs the decorated program
var rootCmd = &cobra.Command{
	Use:   "agentdeco",
	Short: "Decorate functions through a chain of paid agents",
	Long: `agentdeco decorates a handful of demo functions. Each function pays an
agent, the agent picks a wrapper (or forwards to another agent), and the
wrapped function is called. With no subcommand the five built-in calls run
in order.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runProgram,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.agentdeco/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	rootCmd.Flags().Duration("nap", 0, "how long monkaS sleeps (default from config, 2s)")
	rootCmd.Flags().BoolVar(&showSummary, "summary", false, "print a table of timed calls after the run")
	rootCmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "print Prometheus metrics after the run")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("nap", rootCmd.Flags().Lookup("nap"))
}

// loadConfig reads config file, env and flags, then builds the logger
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	logger = logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat == "json")
	logger.Debug("config loaded", map[string]interface{}{"file": viper.ConfigFileUsed(), "nap": cfg.Nap.String()})
	return nil
}

// session wires one dispatcher to one console and recorder
type session struct {
	rec        *report.Recorder
	console    *wrapper.Console
	dispatcher *agent.Dispatcher
}

func newSession(cmd *cobra.Command) *session {
	rec := report.NewRecorder()
	console := wrapper.NewConsole(cmd.OutOrStdout(), rec)
	return &session{
		rec:        rec,
		console:    console,
		dispatcher: agent.NewDispatcher(console, logger, cfg.Defaults),
	}
}

func runProgram(cmd *cobra.Command, args []string) error {
	s := newSession(cmd)
	out := cmd.OutOrStdout()

	runner := program.NewRunner(s.dispatcher, program.NewBuiltins(out, cfg.Nap), s.rec, logger)
	runErr := runner.Run(cfg.Steps())
	for _, r := range s.rec.Results() {
		logger.Debug(r.Summary())
	}

	// Report what did run, even when a step failed
	if showSummary {
		fmt.Fprintln(out)
		if err := s.rec.RenderTable(out); err != nil {
			return err
		}
	}
	if dumpMetrics {
		fmt.Fprintln(out)
		if err := s.rec.WriteMetrics(out); err != nil {
			return err
		}
	}
	return runErr
}
