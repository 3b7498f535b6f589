// Package cli implements the wordbook CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/wordbook/internal/config"
	"github.com/rcliao/wordbook/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
	verbose    bool

	cfg *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "wordbook",
	Short: "Personal vocabulary trainer",
	Long: "A small CLI vocabulary trainer. Import word lists, then study them (self-graded recognition)\n" +
		"or take a dictation (typed spelling). SQLite-backed, single binary.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $WORDBOOK_DB or ~/.wordbook/wordbook.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.wordbook/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	v := config.New()
	if cmd.Flags().Changed("db") {
		v.Set("db", dbPath)
	}
	c, err := config.Load(v, configPath)
	if err != nil {
		return err
	}
	cfg = c

	level := cfg.LogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("config loaded", "db", cfg.DB, "daily_goal", cfg.DailyGoal, "dictation_count", cfg.Dictation.Count)
	return nil
}

func getDBPath() string {
	return cfg.DB
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func textOutput() bool {
	return formatFlag == "text"
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
