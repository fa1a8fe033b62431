package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/github-release-tracker/internal/utils"
)

const migrateRetryDelay = 2 * time.Second

func newListCommand(e *env) *cobra.Command {
	var withReleases bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.application()
			if err != nil {
				return err
			}
			repos, err := a.Service.ListRepositories(cmd.Context(), withReleases)
			if err != nil {
				return err
			}
			return e.print(repos)
		},
	}
	cmd.Flags().BoolVar(&withReleases, "releases", false, "Include releases of every repository")
	return cmd
}

func newGetCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <repository-id>",
		Short: "Show a repository with its releases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.application()
			if err != nil {
				return err
			}
			repo, err := a.Service.GetRepository(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return e.print(repo)
		},
	}
}

func newTrackCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "track <owner>/<name>|<url>",
		Short: "Start tracking a GitHub repository",
		Long: `Start tracking a GitHub repository and pull its releases.

The repository may be given as owner/name, an https GitHub URL or a git remote.
Tracking a repository twice returns the existing record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := utils.ParseRepository(args[0])
			if err != nil {
				return err
			}
			a, err := e.application()
			if err != nil {
				return err
			}
			repo, _, err := a.Service.TrackRepository(cmd.Context(), owner, name)
			if err != nil {
				return err
			}
			return e.print(repo)
		},
	}
}

func newRemoveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <repository-id>",
		Short: "Stop tracking a repository and delete its releases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.application()
			if err != nil {
				return err
			}
			removed, err := a.Service.RemoveRepository(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return errors.New("repository not found")
			}
			return e.print(map[string]bool{"success": true})
		},
	}
}

func newSyncCommand(e *env) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "sync [<repository-id>]",
		Short: "Pull new releases for one repository, or all with --all",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.application()
			if err != nil {
				return err
			}
			if all {
				result, err := a.Service.SyncAllRepositories(cmd.Context())
				if err != nil {
					return err
				}
				return e.print(result)
			}
			repo, err := a.Service.SyncRepository(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return e.print(repo)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Sync every tracked repository")
	return cmd
}

func newSeenCommand(e *env) *cobra.Command {
	var releaseID string

	cmd := &cobra.Command{
		Use:   "seen [<repository-id>]",
		Short: "Mark all releases of a repository seen, or one release with --release",
		Args: func(cmd *cobra.Command, args []string) error {
			if releaseID != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.application()
			if err != nil {
				return err
			}
			if releaseID != "" {
				release, err := a.Service.MarkReleaseSeen(cmd.Context(), releaseID)
				if err != nil {
					return err
				}
				return e.print(release)
			}
			repo, err := a.Service.MarkAllReleasesSeen(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return e.print(repo)
		},
	}
	cmd.Flags().StringVar(&releaseID, "release", "", "Mark only this release seen")
	return cmd
}

func newUnseenCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "unseen <release-id>",
		Short: "Mark a release unseen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.application()
			if err != nil {
				return err
			}
			release, err := a.Service.MarkReleaseUnseen(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return e.print(release)
		},
	}
}

func newMigrateCommand(e *env) *cobra.Command {
	var attempts int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.application()
			if err != nil {
				return err
			}
			if err := a.Migrate(cmd.Context(), attempts, migrateRetryDelay); err != nil {
				return err
			}
			return e.print(map[string]string{
				"status": "migrated",
				"driver": a.Config.Database.Driver,
			})
		},
	}
	cmd.Flags().IntVar(&attempts, "attempts", 1, "Number of attempts while the database is unavailable")
	return cmd
}
