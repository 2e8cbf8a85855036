package ingest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

// PostgresConfig carries the connection details posted by the client.
type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password"`
	SSLMode  string `json:"sslmode"`
}

func (c PostgresConfig) dsn() string {
	port := c.Port
	if port == 0 {
		port = 5432
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, port, c.Database, c.User, c.Password, sslmode)
}

// FetchPostgresTable reads up to limit rows of one table into a dataset,
// rendering every value as text so the cleaning pipeline handles typing.
func FetchPostgresTable(ctx context.Context, cfg PostgresConfig, table string, limit int) (*dataset.Table, error) {
	db, err := sql.Open("postgres", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if limit <= 0 {
		limit = 10000
	}
	// Table names can't be bound as parameters; quote the identifier instead.
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", pq.QuoteIdentifier(table), limit)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %q: %w", table, err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	records := [][]string{}
	for rows.Next() {
		raw := make([]sql.NullString, len(headers))
		scan := make([]interface{}, len(headers))
		for i := range raw {
			scan[i] = &raw[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		record := make([]string, len(headers))
		for i, v := range raw {
			if v.Valid {
				record[i] = v.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while reading rows: %w", err)
	}

	return dataset.New(headers, records), nil
}
