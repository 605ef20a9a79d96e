package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	"notion-mirror/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
)

// Postgres wraps the single relational handle shared by every component in
// one process. Each statement commits independently; no transaction spans
// multiple records.
type Postgres struct {
	DB *sql.DB
}

// Connect opens and verifies the Postgres connection.
func Connect(cfg *config.Config) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ping the database to verify connection
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	log.Println("Connected to Postgres!")

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	return &Postgres{DB: db}, nil
}

// NewDatabase opens the Postgres connection with lifecycle management
func NewDatabase(lc fx.Lifecycle, cfg *config.Config) (*Postgres, error) {
	pg, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Closing Postgres connection...")
			return pg.DB.Close()
		},
	})

	return pg, nil
}

// Exec runs one parameterized statement.
func (p *Postgres) Exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := p.DB.ExecContext(ctx, query, args...)
	return err
}

// TableExists reports whether a table is present in the public schema.
func (p *Postgres) TableExists(ctx context.Context, table string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`
	var exists bool
	if err := p.DB.QueryRowContext(ctx, query, table).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListColumns returns the column names of a table in ordinal order.
func (p *Postgres) ListColumns(ctx context.Context, table string) ([]string, error) {
	const query = `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position
	`
	rows, err := p.DB.QueryContext(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}
