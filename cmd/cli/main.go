package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/deepinsight/internal/ai"
	"github.com/myrjola/deepinsight/internal/interview"
	"github.com/myrjola/deepinsight/internal/logging"
	"github.com/myrjola/deepinsight/sqlite"
	"github.com/spf13/cobra"
)

var dbURL string

func init() {
	if err := godotenv.Load(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "no .env file loaded:", err)
	}
	rootCmd.PersistentFlags().StringVar(&dbURL, "sqlite-url", "./deepinsight.sqlite", "SQLite URL")
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.AddCommand(simulateBusinessCmd)
	simulateCmd.AddCommand(simulateEmployeeCmd)
}

var rootCmd = &cobra.Command{
	Use:  "deepinsight-cli",
	Long: `Command line utilities for the DeepInsight interview backend.`,
}

func newLogger() *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return slog.New(handler)
}

// newSimulator opens the database and wires up a simulator for the CLI
// commands.
func newSimulator(cmd *cobra.Command) (*interview.Simulator, *sqlite.Database, error) {
	logger := newLogger()
	dbs, err := sqlite.NewDatabase(cmd.Context(), dbURL)
	if err != nil {
		return nil, nil, err
	}
	aiClient, err := ai.NewClientFromEnv()
	if err != nil {
		_ = dbs.Close()
		return nil, nil, err
	}
	return interview.NewSimulator(dbs, aiClient, logger), dbs, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
