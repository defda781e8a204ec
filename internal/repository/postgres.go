package repository

import (
	"context"
	"errors"
	"fmt"

	"forecast-locator-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the zip_points table. It is safe to run repeatedly.
const Schema = `
	CREATE TABLE IF NOT EXISTS zip_points (
		zip_code           CHAR(5) PRIMARY KEY,
		latitude           DOUBLE PRECISION NOT NULL,
		longitude          DOUBLE PRECISION NOT NULL,
		office             VARCHAR(8) NOT NULL,
		grid_x             INTEGER NOT NULL,
		grid_y             INTEGER NOT NULL,
		forecast           TEXT NOT NULL,
		forecast_hourly    TEXT NOT NULL,
		forecast_grid_data TEXT NOT NULL,
		resolved_at        TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS zip_points_office_idx ON zip_points (office);
`

const upsertZipPointSQL = `
	INSERT INTO zip_points (
		zip_code, latitude, longitude, office, grid_x, grid_y,
		forecast, forecast_hourly, forecast_grid_data, resolved_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (zip_code) DO UPDATE SET
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		office = EXCLUDED.office,
		grid_x = EXCLUDED.grid_x,
		grid_y = EXCLUDED.grid_y,
		forecast = EXCLUDED.forecast,
		forecast_hourly = EXCLUDED.forecast_hourly,
		forecast_grid_data = EXCLUDED.forecast_grid_data,
		resolved_at = EXCLUDED.resolved_at
`

const selectZipPointColumns = `
	SELECT
		zip_code,
		latitude,
		longitude,
		office,
		grid_x,
		grid_y,
		forecast,
		forecast_hourly,
		forecast_grid_data,
		resolved_at
	FROM zip_points
`

// Repository stores resolved ZIP points in PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the tables the repository needs
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

func upsertArgs(p models.ZipPoint) []any {
	return []any{
		p.ZipCode,
		p.Coordinates.Latitude,
		p.Coordinates.Longitude,
		p.Grid.Office,
		p.Grid.GridX,
		p.Grid.GridY,
		p.Grid.Forecast,
		p.Grid.ForecastHourly,
		p.Grid.ForecastGridData,
		p.ResolvedAt,
	}
}

// UpsertZipPoint inserts a ZIP point or replaces the stored one for the same ZIP code
func (r *Repository) UpsertZipPoint(ctx context.Context, point models.ZipPoint) error {
	if _, err := r.db.Exec(ctx, upsertZipPointSQL, upsertArgs(point)...); err != nil {
		return fmt.Errorf("repository: failed to upsert zip point %s: %w", point.ZipCode, err)
	}
	return nil
}

// UpsertZipPoints upserts many ZIP points in one round trip
func (r *Repository) UpsertZipPoints(ctx context.Context, points []models.ZipPoint) error {
	if len(points) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range points {
		batch.Queue(upsertZipPointSQL, upsertArgs(p)...)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("repository: failed to upsert zip points: %w", err)
	}
	return nil
}

// FindZipPoint returns the stored point for a ZIP code, or nil when there is none
func (r *Repository) FindZipPoint(ctx context.Context, zipCode string) (*models.ZipPoint, error) {
	row := r.db.QueryRow(ctx, selectZipPointColumns+" WHERE zip_code = $1", zipCode)

	point, err := scanZipPoint(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to find zip point: %w", err)
	}

	return &point, nil
}

// ListZipPointsByOffice returns the stored points served by a forecast office, ordered by ZIP code
func (r *Repository) ListZipPointsByOffice(ctx context.Context, office string) ([]models.ZipPoint, error) {
	rows, err := r.db.Query(ctx, selectZipPointColumns+" WHERE office = $1 ORDER BY zip_code", office)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute office query: %w", err)
	}
	defer rows.Close()

	points := []models.ZipPoint{}
	for rows.Next() {
		point, err := scanZipPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan zip point: %w", err)
		}
		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return points, nil
}

func scanZipPoint(row pgx.Row) (models.ZipPoint, error) {
	var p models.ZipPoint
	err := row.Scan(
		&p.ZipCode,
		&p.Coordinates.Latitude,
		&p.Coordinates.Longitude,
		&p.Grid.Office,
		&p.Grid.GridX,
		&p.Grid.GridY,
		&p.Grid.Forecast,
		&p.Grid.ForecastHourly,
		&p.Grid.ForecastGridData,
		&p.ResolvedAt,
	)
	return p, err
}
