package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/chorus/internal/models"
)

// CatalogCache persists catalog snapshots in sqlite.
//
// Put replaces rows by id, so a full refresh leaves no stale entries behind
// beyond those the server no longer lists; Prune removes the rest.
type CatalogCache struct {
	db *sql.DB
}

// NewCatalogCache creates a cache over the given database connection.
func NewCatalogCache(db *sql.DB) *CatalogCache {
	return &CatalogCache{db: db}
}

// Put upserts the given entries with the current fetch timestamp.
func (c *CatalogCache) Put(entries []models.Music) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO catalog_cache (id, title, artist, album, genre, year, duration, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			album = excluded.album,
			genre = excluded.genre,
			year = excluded.year,
			duration = excluded.duration,
			fetched_at = excluded.fetched_at
	`

	now := time.Now()
	for _, m := range entries {
		if _, err := tx.Exec(query, m.ID, m.Title, m.Artist, m.Album, m.Genre, m.Year, m.Duration, now); err != nil {
			return fmt.Errorf("failed to upsert catalog entry %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog refresh: %w", err)
	}

	return nil
}

// List returns all cached entries ordered by id.
func (c *CatalogCache) List() ([]models.Music, error) {
	query := `
		SELECT id, title, artist, album, genre, year, duration
		FROM catalog_cache
		ORDER BY id
	`

	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog cache: %w", err)
	}
	defer rows.Close()

	var entries []models.Music
	for rows.Next() {
		m, err := scanMusic(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *m)
	}

	return entries, rows.Err()
}

// Get returns one cached entry, or sql.ErrNoRows when absent.
func (c *CatalogCache) Get(id int64) (*models.Music, error) {
	query := `
		SELECT id, title, artist, album, genre, year, duration
		FROM catalog_cache
		WHERE id = ?
	`

	return scanMusic(c.db.QueryRow(query, id))
}

// SetCommentCount records the comment count the sync engine observed.
func (c *CatalogCache) SetCommentCount(id int64, count int) error {
	_, err := c.db.Exec("UPDATE catalog_cache SET comment_count = ? WHERE id = ?", count, id)
	if err != nil {
		return fmt.Errorf("failed to record comment count for %d: %w", id, err)
	}
	return nil
}

// CommentCount returns the last observed comment count for an entry.
func (c *CatalogCache) CommentCount(id int64) (int, error) {
	var count int
	err := c.db.QueryRow("SELECT comment_count FROM catalog_cache WHERE id = ?", id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to read comment count for %d: %w", id, err)
	}
	return count, nil
}

// Prune removes cached entries whose id is not in keep and returns how many
// were dropped. Called after a full refresh so deletions on the server
// eventually fall out of the cache.
func (c *CatalogCache) Prune(keep []int64) (int, error) {
	keepSet := make(map[int64]struct{}, len(keep))
	for _, id := range keep {
		keepSet[id] = struct{}{}
	}

	cached, err := c.List()
	if err != nil {
		return 0, err
	}

	tx, err := c.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	removed := 0
	for _, m := range cached {
		if _, ok := keepSet[m.ID]; ok {
			continue
		}
		if _, err := tx.Exec("DELETE FROM catalog_cache WHERE id = ?", m.ID); err != nil {
			return 0, fmt.Errorf("failed to prune catalog entry %d: %w", m.ID, err)
		}
		removed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune: %w", err)
	}

	return removed, nil
}

// Clear drops the whole snapshot.
func (c *CatalogCache) Clear() error {
	if _, err := c.db.Exec("DELETE FROM catalog_cache"); err != nil {
		return fmt.Errorf("failed to clear catalog cache: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMusic(row rowScanner) (*models.Music, error) {
	var m models.Music
	var album, genre sql.NullString
	var year, duration sql.NullInt64

	if err := row.Scan(&m.ID, &m.Title, &m.Artist, &album, &genre, &year, &duration); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
	}

	if album.Valid {
		m.Album = &album.String
	}
	if genre.Valid {
		m.Genre = &genre.String
	}
	if year.Valid {
		y := int(year.Int64)
		m.Year = &y
	}
	if duration.Valid {
		d := int(duration.Int64)
		m.Duration = &d
	}

	return &m, nil
}
