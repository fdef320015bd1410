package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/FleetKeeper/internal/models"
)

// PostgresDriverRepository stores user↔vehicle driver assignments.
type PostgresDriverRepository struct {
	DB *sql.DB
}

// NewPostgresDriverRepository creates a new PostgresDriverRepository using the provided *sql.DB.
func NewPostgresDriverRepository(db *sql.DB) *PostgresDriverRepository {
	return &PostgresDriverRepository{DB: db}
}

func scanDriver(s scanner) (*models.Driver, error) {
	var d models.Driver
	if err := s.Scan(&d.UserID, &d.VehicleID); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns a page of driver assignments ordered by user.
func (r *PostgresDriverRepository) List(ctx context.Context, page models.Page) ([]models.Driver, error) {
	drivers, err := queryList(ctx, r.DB,
		`SELECT user_id, vehicle_id FROM drivers ORDER BY user_id, vehicle_id LIMIT $1 OFFSET $2`,
		page, scanDriver)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}

// GetByUserID returns the first assignment of the given user.
func (r *PostgresDriverRepository) GetByUserID(ctx context.Context, userID int64) (*models.Driver, error) {
	d, err := scanDriver(r.DB.QueryRowContext(ctx,
		`SELECT user_id, vehicle_id FROM drivers WHERE user_id = $1 ORDER BY vehicle_id LIMIT 1`, userID))
	if err != nil {
		return nil, fmt.Errorf("get driver by user: %w", translate(err))
	}
	return d, nil
}

// GetByVehicleID returns the first assignment of the given vehicle.
func (r *PostgresDriverRepository) GetByVehicleID(ctx context.Context, vehicleID int64) (*models.Driver, error) {
	d, err := scanDriver(r.DB.QueryRowContext(ctx,
		`SELECT user_id, vehicle_id FROM drivers WHERE vehicle_id = $1 ORDER BY user_id LIMIT 1`, vehicleID))
	if err != nil {
		return nil, fmt.Errorf("get driver by vehicle: %w", translate(err))
	}
	return d, nil
}

// Create stores an assignment. Returns ErrConflict if it already exists and
// ErrReference if the user or vehicle is missing.
func (r *PostgresDriverRepository) Create(ctx context.Context, in models.Driver) (*models.Driver, error) {
	d, err := scanDriver(r.DB.QueryRowContext(ctx,
		`INSERT INTO drivers (user_id, vehicle_id) VALUES ($1, $2) RETURNING user_id, vehicle_id`,
		in.UserID, in.VehicleID))
	if err != nil {
		return nil, fmt.Errorf("create driver: %w", translate(err))
	}
	return d, nil
}

// Reassign moves the user's assignment to another vehicle.
func (r *PostgresDriverRepository) Reassign(ctx context.Context, userID, vehicleID int64) (*models.Driver, error) {
	var updated *models.Driver
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		current, err := scanDriver(tx.QueryRowContext(ctx,
			`SELECT user_id, vehicle_id FROM drivers WHERE user_id = $1 ORDER BY vehicle_id LIMIT 1 FOR UPDATE`, userID))
		if err != nil {
			return err
		}
		updated, err = scanDriver(tx.QueryRowContext(ctx,
			`UPDATE drivers SET vehicle_id = $3 WHERE user_id = $1 AND vehicle_id = $2 RETURNING user_id, vehicle_id`,
			current.UserID, current.VehicleID, vehicleID))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reassign driver: %w", translate(err))
	}
	return updated, nil
}

// Delete removes the user's assignment and returns it.
func (r *PostgresDriverRepository) Delete(ctx context.Context, userID int64) (*models.Driver, error) {
	var deleted *models.Driver
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		current, err := scanDriver(tx.QueryRowContext(ctx,
			`SELECT user_id, vehicle_id FROM drivers WHERE user_id = $1 ORDER BY vehicle_id LIMIT 1 FOR UPDATE`, userID))
		if err != nil {
			return err
		}
		deleted, err = scanDriver(tx.QueryRowContext(ctx,
			`DELETE FROM drivers WHERE user_id = $1 AND vehicle_id = $2 RETURNING user_id, vehicle_id`,
			current.UserID, current.VehicleID))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("delete driver: %w", translate(err))
	}
	return deleted, nil
}
