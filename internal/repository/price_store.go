package repository

import (
	"context"
	"database/sql"
	"fmt"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/repository"
	"FarmPulse/pkg/util"
)

// ClickHousePriceStore implements PriceStore on ClickHouse. Idempotency on
// (market, commodity, day) comes from the ReplacingMergeTree engine; see
// Schema for the table definitions.
type ClickHousePriceStore struct {
	db *sql.DB
}

// NewClickHousePriceStore creates the price store over an open connection.
func NewClickHousePriceStore(db *sql.DB) repository.PriceStore {
	return &ClickHousePriceStore{db: db}
}

func (s *ClickHousePriceStore) Upsert(ctx context.Context, o models.PriceObservation) error {
	const q = `INSERT INTO market_prices
		(market, commodity, day, price, unit, volume, quality, source, verified, region, lat, lon, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	verified := uint8(0)
	if o.Verified {
		verified = 1
	}
	_, err := s.db.ExecContext(ctx, q,
		o.Market,
		o.Commodity,
		util.DayOf(o.RecordedAt),
		o.Price,
		o.Unit,
		o.Volume,
		o.Quality,
		o.Source,
		verified,
		o.Region,
		o.Lat,
		o.Lon,
		o.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", o.Market, o.Commodity, err)
	}
	return nil
}

// UpsertBatch writes records independently so one malformed observation does
// not sink the rest. Returns the saved count; the error reports failures.
func (s *ClickHousePriceStore) UpsertBatch(ctx context.Context, obs []models.PriceObservation) (int, error) {
	saved := 0
	var lastErr error
	failed := 0
	for _, o := range obs {
		if o.Market == "" || o.Commodity == "" || o.Price <= 0 {
			continue
		}
		if err := s.Upsert(ctx, o); err != nil {
			failed++
			lastErr = err
			continue
		}
		saved++
	}
	if failed > 0 {
		return saved, fmt.Errorf("%d of %d records failed: %w", failed, len(obs), lastErr)
	}
	return saved, nil
}

func (s *ClickHousePriceStore) History(ctx context.Context, commodity, market string, limit, sinceDays int) ([]models.PricePoint, error) {
	q := `SELECT price, recorded_at FROM market_prices FINAL WHERE commodity = ?`
	args := []interface{}{commodity}
	if market != "" {
		q += ` AND market = ?`
		args = append(args, market)
	}
	if sinceDays > 0 {
		q += ` AND day >= today() - ?`
		args = append(args, sinceDays)
	}
	q += ` ORDER BY recorded_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", commodity, err)
	}
	defer rows.Close()

	var points []models.PricePoint
	for rows.Next() {
		var p models.PricePoint
		if err := rows.Scan(&p.Price, &p.RecordedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *ClickHousePriceStore) LatestPrice(ctx context.Context, commodity, market string) (float64, bool, error) {
	q := `SELECT price FROM market_prices FINAL WHERE commodity = ?`
	args := []interface{}{commodity}
	if market != "" {
		q += ` AND market = ?`
		args = append(args, market)
	}
	q += ` ORDER BY recorded_at DESC LIMIT 1`

	var price float64
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&price)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("latest price %s: %w", commodity, err)
	}
	return price, true, nil
}

// PurgeOlderThan counts then lightweight-deletes rows past the retention
// horizon. The count is taken first because DELETE reports no row count.
func (s *ClickHousePriceStore) PurgeOlderThan(ctx context.Context, days int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count() FROM market_prices WHERE day < today() - ?`, days).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("purge count: %w", err)
	}
	if count == 0 {
		return 0, nil
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM market_prices WHERE day < today() - ?`, days); err != nil {
		return 0, fmt.Errorf("purge delete: %w", err)
	}
	return count, nil
}

func (s *ClickHousePriceStore) CountOnDay(ctx context.Context, day string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count() FROM market_prices FINAL WHERE day = ?`, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count on %s: %w", day, err)
	}
	return count, nil
}

func (s *ClickHousePriceStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHousePriceStore) Close() error {
	return nil // connection owned by pkg/clickhouse
}
