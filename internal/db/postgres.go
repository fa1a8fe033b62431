package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"

	apperrors "github.com/Kamar-Folarin/github-release-tracker/internal/errors"
	"github.com/Kamar-Folarin/github-release-tracker/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const uniqueViolation = "23505"

const repositoryColumns = `id, owner, name, full_name, description, stargazers_count, forks_count,
	watchers_count, open_issues_count, has_unseen_releases, last_synced_at, created_at, updated_at`

const releaseColumns = `id, repository_id, tag_name, name, body, html_url, published_at, seen,
	created_at, updated_at`

type PostgresStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresStoreWithDB(db), nil
}

// NewPostgresStoreWithDB wraps an existing connection pool
func NewPostgresStoreWithDB(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(s.db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) GetRepository(ctx context.Context, id string, withReleases bool) (*models.Repository, error) {
	if !validID(id) {
		return nil, repositoryNotFound(id)
	}

	var repo models.Repository
	err := s.db.GetContext(ctx, &repo, `SELECT `+repositoryColumns+` FROM repositories WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositoryNotFound(id)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}

	if withReleases {
		if err := s.attachReleases(ctx, []*models.Repository{&repo}); err != nil {
			return nil, err
		}
	}
	return &repo, nil
}

func (s *PostgresStore) GetRepositoryByOwnerAndName(ctx context.Context, owner, name string, withReleases bool) (*models.Repository, error) {
	fullName := models.FullNameOf(owner, name)

	var repo models.Repository
	err := s.db.GetContext(ctx, &repo, `SELECT `+repositoryColumns+` FROM repositories WHERE full_name = $1`, fullName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositoryNotFound(fullName)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}

	if withReleases {
		if err := s.attachReleases(ctx, []*models.Repository{&repo}); err != nil {
			return nil, err
		}
	}
	return &repo, nil
}

func (s *PostgresStore) ListRepositories(ctx context.Context, withReleases bool) ([]*models.Repository, error) {
	repos := []*models.Repository{}
	if err := s.db.SelectContext(ctx, &repos, `SELECT `+repositoryColumns+` FROM repositories ORDER BY full_name`); err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	if withReleases && len(repos) > 0 {
		if err := s.attachReleases(ctx, repos); err != nil {
			return nil, err
		}
	}
	return repos, nil
}

// attachReleases loads the releases of all given repositories in one query
func (s *PostgresStore) attachReleases(ctx context.Context, repos []*models.Repository) error {
	ids := make([]string, 0, len(repos))
	for _, repo := range repos {
		ids = append(ids, repo.ID)
	}

	releases := []*models.Release{}
	err := s.db.SelectContext(ctx, &releases, `
		SELECT `+releaseColumns+` FROM releases
		WHERE repository_id = ANY($1)
		ORDER BY published_at DESC, created_at DESC`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load releases: %w", err)
	}

	groupReleases(repos, releases)
	return nil
}

func (s *PostgresStore) SaveRepository(ctx context.Context, repo *models.Repository) error {
	stampRepository(repo, s.now())

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO repositories (`+repositoryColumns+`)
		VALUES (:id, :owner, :name, :full_name, :description, :stargazers_count, :forks_count,
			:watchers_count, :open_issues_count, :has_unseen_releases, :last_synced_at, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			owner = EXCLUDED.owner,
			name = EXCLUDED.name,
			full_name = EXCLUDED.full_name,
			description = EXCLUDED.description,
			stargazers_count = EXCLUDED.stargazers_count,
			forks_count = EXCLUDED.forks_count,
			watchers_count = EXCLUDED.watchers_count,
			open_issues_count = EXCLUDED.open_issues_count,
			has_unseen_releases = EXCLUDED.has_unseen_releases,
			last_synced_at = EXCLUDED.last_synced_at,
			updated_at = EXCLUDED.updated_at`, repo)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return apperrors.NewConflictError(fmt.Sprintf("repository already tracked: %s", repo.FullName), err)
		}
		return fmt.Errorf("failed to save repository: %w", err)
	}
	return nil
}

// DeleteRepository deletes a repository and its releases in one transaction
func (s *PostgresStore) DeleteRepository(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM releases WHERE repository_id = $1`, id); err != nil {
		return false, fmt.Errorf("failed to delete releases: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM repositories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete repository: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresStore) UpdateHasUnseenReleases(ctx context.Context, repositoryID string, value bool) error {
	if !validID(repositoryID) {
		return repositoryNotFound(repositoryID)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE repositories SET has_unseen_releases = $2, updated_at = $3
		WHERE id = $1`, repositoryID, value, s.now())
	if err != nil {
		return fmt.Errorf("failed to update unseen flag: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repositoryNotFound(repositoryID)
	}
	return nil
}

func (s *PostgresStore) MarkRepositorySynced(ctx context.Context, repositoryID string, syncedAt time.Time, newReleases bool) error {
	if !validID(repositoryID) {
		return repositoryNotFound(repositoryID)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE repositories
		SET last_synced_at = $2, has_unseen_releases = has_unseen_releases OR $3, updated_at = $4
		WHERE id = $1`, repositoryID, syncedAt, newReleases, s.now())
	if err != nil {
		return fmt.Errorf("failed to mark repository synced: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repositoryNotFound(repositoryID)
	}
	return nil
}

func (s *PostgresStore) ListReleasesByRepository(ctx context.Context, repositoryID string) ([]*models.Release, error) {
	releases := []*models.Release{}
	if !validID(repositoryID) {
		return releases, nil
	}

	err := s.db.SelectContext(ctx, &releases, `
		SELECT `+releaseColumns+` FROM releases
		WHERE repository_id = $1
		ORDER BY published_at DESC, created_at DESC`, repositoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	return releases, nil
}

func (s *PostgresStore) GetRelease(ctx context.Context, id string) (*models.Release, error) {
	if !validID(id) {
		return nil, releaseNotFound(id)
	}

	var release models.Release
	err := s.db.GetContext(ctx, &release, `SELECT `+releaseColumns+` FROM releases WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, releaseNotFound(id)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get release: %w", err)
	}
	return &release, nil
}

func (s *PostgresStore) SaveRelease(ctx context.Context, release *models.Release) error {
	stampRelease(release, s.now())

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO releases (`+releaseColumns+`)
		VALUES (:id, :repository_id, :tag_name, :name, :body, :html_url, :published_at, :seen,
			:created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			seen = EXCLUDED.seen,
			updated_at = EXCLUDED.updated_at`, release)
	if err != nil {
		return fmt.Errorf("failed to save release: %w", err)
	}
	return nil
}

func (s *PostgresStore) SetReleaseSeen(ctx context.Context, id string, seen bool) (*models.Release, error) {
	if !validID(id) {
		return nil, releaseNotFound(id)
	}

	var release models.Release
	err := s.db.GetContext(ctx, &release, `
		UPDATE releases SET seen = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+releaseColumns, id, seen, s.now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, releaseNotFound(id)
	} else if err != nil {
		return nil, fmt.Errorf("failed to update release: %w", err)
	}
	return &release, nil
}

func (s *PostgresStore) SetSeenForRepository(ctx context.Context, repositoryID string, seen bool) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE releases SET seen = $2, updated_at = $3
		WHERE repository_id = $1 AND seen <> $2`, repositoryID, seen, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to update releases: %w", err)
	}
	return res.RowsAffected()
}

func (s *PostgresStore) CountUnseenForRepository(ctx context.Context, repositoryID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM releases
		WHERE repository_id = $1 AND seen = FALSE`, repositoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unseen releases: %w", err)
	}
	return count, nil
}
