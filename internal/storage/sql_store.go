package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"zaur-newsdesk/internal/model"
)

// SQLStore serves both the sqlite and postgres backends over database/sql;
// only the placeholder style differs between the two drivers.
type SQLStore struct {
	db  *sql.DB
	sb  sq.StatementBuilderType
	now func() time.Time
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS news_items (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		publish_date TIMESTAMP NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		source_id TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS news_comments (
		item_id TEXT PRIMARY KEY,
		comment TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS news_discoveries (
		item_id TEXT PRIMARY KEY,
		discovered_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_news_items_publish_date ON news_items (publish_date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_news_items_category ON news_items (category)`,
}

// NewSQLStore creates the schema if needed and returns a store bound to db.
// driver must be "sqlite" or "postgres".
func NewSQLStore(ctx context.Context, db *sql.DB, driver string) (*SQLStore, error) {
	sb := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if driver == "postgres" {
		sb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &SQLStore{db: db, sb: sb, now: time.Now}, nil
}

func (s *SQLStore) Upsert(ctx context.Context, item model.NewsItem) (bool, error) {
	q := s.sb.Insert("news_items").
		Columns("id", "title", "summary", "url", "publish_date", "source", "source_id", "category", "image_url", "author").
		Values(item.ID, item.Title, item.Summary, item.URL, item.PublishDate.UTC(), item.Source, item.SourceID, item.Category, item.ImageURL, item.Author).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			url = excluded.url,
			publish_date = excluded.publish_date,
			source = excluded.source,
			source_id = excluded.source_id,
			category = excluded.category,
			image_url = excluded.image_url,
			author = excluded.author
			WHERE excluded.publish_date > news_items.publish_date`)
	res, err := q.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("upsert item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLStore) Query(ctx context.Context, category string) ([]model.NewsItem, error) {
	q := s.sb.Select("id", "title", "summary", "url", "publish_date", "source", "source_id", "category", "image_url", "author").
		From("news_items").
		OrderBy("publish_date DESC", "id ASC")
	if category != "" {
		q = q.Where(sq.Eq{"category": category})
	}
	rows, err := q.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var out []model.NewsItem
	for rows.Next() {
		var it model.NewsItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Summary, &it.URL, &it.PublishDate, &it.Source, &it.SourceID, &it.Category, &it.ImageURL, &it.Author); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *SQLStore) Prune(ctx context.Context, maxItems int) (int, error) {
	if maxItems <= 0 {
		return 0, nil
	}
	q := s.sb.Delete("news_items").
		Where(sq.Expr("id NOT IN (SELECT id FROM news_items ORDER BY publish_date DESC, id ASC LIMIT ?)", maxItems))
	res, err := q.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("prune items: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLStore) SaveComment(ctx context.Context, itemID, text string) error {
	q := s.sb.Insert("news_comments").
		Columns("item_id", "comment", "created_at").
		Values(itemID, text, s.now().UTC()).
		Suffix(`ON CONFLICT (item_id) DO UPDATE SET
			comment = excluded.comment,
			created_at = excluded.created_at`)
	if _, err := q.RunWith(s.db).ExecContext(ctx); err != nil {
		return fmt.Errorf("save comment: %w", err)
	}
	return nil
}

func (s *SQLStore) GetComment(ctx context.Context, itemID string) (string, error) {
	var text string
	err := s.sb.Select("comment").
		From("news_comments").
		Where(sq.Eq{"item_id": itemID}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&text)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get comment: %w", err)
	}
	return text, nil
}

func (s *SQLStore) AddDiscovery(ctx context.Context, itemID string) error {
	q := s.sb.Insert("news_discoveries").
		Columns("item_id", "discovered_at").
		Values(itemID, s.now().UTC()).
		Suffix(`ON CONFLICT (item_id) DO UPDATE SET discovered_at = excluded.discovered_at`)
	if _, err := q.RunWith(s.db).ExecContext(ctx); err != nil {
		return fmt.Errorf("add discovery: %w", err)
	}
	return nil
}

func (s *SQLStore) ListDiscoveries(ctx context.Context) ([]model.DiscoveredItem, error) {
	rows, err := s.sb.Select("item_id", "discovered_at").
		From("news_discoveries").
		OrderBy("discovered_at DESC", "item_id ASC").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list discoveries: %w", err)
	}
	defer rows.Close()

	var out []model.DiscoveredItem
	for rows.Next() {
		var d model.DiscoveredItem
		if err := rows.Scan(&d.ItemID, &d.Timestamp); err != nil {
			return nil, fmt.Errorf("scan discovery: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLStore) PruneDiscoveries(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-maxAge).UTC()
	res, err := s.sb.Delete("news_discoveries").
		Where(sq.Lt{"discovered_at": cutoff}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("prune discoveries: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
