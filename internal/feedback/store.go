package feedback

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Vinuka-CS/seed-to-stream/internal/media"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store persists feedback records in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the feedback database and applies
// migrations. The parent directory is created when missing.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("feedback database path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure feedback dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path exposes the backing database file for inspection.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

type migration struct {
	version string
	sql     string
}

func loadMigrations() ([]migration, error) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		versions = append(versions, entry.Name())
	}
	sort.Strings(versions)

	migrations := make([]migration, 0, len(versions))
	for _, name := range versions {
		data, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, migration{
			version: strings.TrimSuffix(name, ".sql"),
			sql:     string(data),
		})
	}
	return migrations, nil
}

func (s *Store) applyMigrations(ctx context.Context) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", m.version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}

// AppendOrReplace stores a rating, replacing any previous rating for the same
// (item, media type) pair.
func (s *Store) AppendOrReplace(ctx context.Context, record Record) error {
	if record.ItemID == 0 {
		return errors.New("record item id required")
	}
	if !record.MediaType.Valid() {
		return fmt.Errorf("record media type %q invalid", record.MediaType)
	}
	if record.Rating < 1 || record.Rating > 5 {
		return fmt.Errorf("record rating %.1f out of range [1, 5]", record.Rating)
	}
	ratedAt := record.RatedAt
	if ratedAt.IsZero() {
		ratedAt = time.Now().UTC()
	}

	genreIDs, err := json.Marshal(emptyIfNilIDs(record.GenreIDs))
	if err != nil {
		return fmt.Errorf("encode genre ids: %w", err)
	}
	castNames, err := json.Marshal(emptyIfNil(record.CastNames))
	if err != nil {
		return fmt.Errorf("encode cast names: %w", err)
	}
	crewNames, err := json.Marshal(emptyIfNil(record.CrewNames))
	if err != nil {
		return fmt.Errorf("encode crew names: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO feedback (item_id, media_type, rating, rated_at, genre_ids, cast_names, crew_names)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (item_id, media_type) DO UPDATE SET
			rating = excluded.rating,
			rated_at = excluded.rated_at,
			genre_ids = excluded.genre_ids,
			cast_names = excluded.cast_names,
			crew_names = excluded.crew_names`,
		record.ItemID, string(record.MediaType), record.Rating,
		ratedAt.UTC().Format(time.RFC3339Nano),
		string(genreIDs), string(castNames), string(crewNames),
	)
	if err != nil {
		return fmt.Errorf("store feedback: %w", err)
	}
	return nil
}

// ReadAll returns every feedback record, oldest first.
func (s *Store) ReadAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, media_type, rating, rated_at, genre_ids, cast_names, crew_names
		FROM feedback ORDER BY rated_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			record    Record
			mediaType string
			ratedAt   string
			genreIDs  string
			castNames string
			crewNames string
		)
		if err := rows.Scan(&record.ItemID, &mediaType, &record.Rating, &ratedAt, &genreIDs, &castNames, &crewNames); err != nil {
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		record.MediaType = media.MediaType(mediaType)
		if parsed, err := time.Parse(time.RFC3339Nano, ratedAt); err == nil {
			record.RatedAt = parsed
		}
		if err := json.Unmarshal([]byte(genreIDs), &record.GenreIDs); err != nil {
			return nil, fmt.Errorf("decode genre ids: %w", err)
		}
		if err := json.Unmarshal([]byte(castNames), &record.CastNames); err != nil {
			return nil, fmt.Errorf("decode cast names: %w", err)
		}
		if err := json.Unmarshal([]byte(crewNames), &record.CrewNames); err != nil {
			return nil, fmt.Errorf("decode crew names: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback rows: %w", err)
	}
	return records, nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func emptyIfNilIDs(values []int64) []int64 {
	if values == nil {
		return []int64{}
	}
	return values
}
