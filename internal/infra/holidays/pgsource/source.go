package pgsource

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/workcalc/internal/domain/calendar"
	"github.com/yanqian/workcalc/internal/domain/holiday"
)

// Source reads holidays maintained in a Postgres table:
//
//	CREATE TABLE holidays (holiday_date DATE PRIMARY KEY, name TEXT NOT NULL DEFAULT '');
type Source struct {
	pool *pgxpool.Pool
}

// NewSource constructs the source.
func NewSource(pool *pgxpool.Pool) *Source {
	return &Source{pool: pool}
}

// Fetch returns every stored holiday ordered by date.
func (s *Source) Fetch(ctx context.Context) ([]calendar.Holiday, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT holiday_date, name
		FROM holidays
		ORDER BY holiday_date
	`)
	if err != nil {
		return nil, fmt.Errorf("query holidays: %w", err)
	}
	defer rows.Close()

	var items []calendar.Holiday
	for rows.Next() {
		item, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHoliday(row rowScanner) (calendar.Holiday, error) {
	var (
		day  time.Time
		name string
	)
	if err := row.Scan(&day, &name); err != nil {
		return calendar.Holiday{}, fmt.Errorf("scan holiday: %w", err)
	}
	return calendar.Holiday{Date: day.Format(calendar.DateLayout), Name: name}, nil
}

var _ holiday.Source = (*Source)(nil)
