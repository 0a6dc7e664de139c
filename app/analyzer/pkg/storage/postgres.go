package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/config"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/model"
	"github.com/lib/pq"
)

// Storage 查询日志，保存在 PostgreSQL
type Storage struct {
	db *sql.DB
}

func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analysis_queries (
			id SERIAL PRIMARY KEY,
			query TEXT NOT NULL,
			query_type TEXT,
			areas TEXT[],
			records INTEGER,
			summary TEXT,
			duration_ms BIGINT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_queries_created_at ON analysis_queries (created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// SaveQuery 记录一次查询
func (s *Storage) SaveQuery(ctx context.Context, e model.QueryEntry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_queries (query, query_type, areas, records, summary, duration_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.Query, e.QueryType, pq.Array(e.Areas), e.Records, e.Summary, e.Duration.Milliseconds(), createdAt,
	)
	return err
}

// RecentQueries 最近的查询，按时间倒序
func (s *Storage) RecentQueries(ctx context.Context, limit int) ([]model.QueryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT query, COALESCE(query_type, ''), areas, COALESCE(records, 0), COALESCE(summary, ''), COALESCE(duration_ms, 0), created_at
		 FROM analysis_queries ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.QueryEntry
	for rows.Next() {
		var (
			e  model.QueryEntry
			ms int64
		)
		if err := rows.Scan(&e.Query, &e.QueryType, pq.Array(&e.Areas), &e.Records, &e.Summary, &ms, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, e)
	}
	return out, rows.Err()
}
