package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand(newEnv(os.Stdout, loadApp))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tracker",
		Short: "Track GitHub repositories and their releases",
		Long: `tracker manages the same store as the release tracker server.

Database and GitHub settings are read from the environment (or a .env file):
DB_DRIVER, DB_CONNECTION_STRING, SQLITE_PATH, GITHUB_TOKEN, ...

A SQLite database is created and migrated on first use. For Postgres, run
"tracker migrate" once before the other commands.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
	}

	rootCmd.AddCommand(
		newListCommand(e),
		newGetCommand(e),
		newTrackCommand(e),
		newRemoveCommand(e),
		newSyncCommand(e),
		newSeenCommand(e),
		newUnseenCommand(e),
		newMigrateCommand(e),
	)
	return rootCmd
}
