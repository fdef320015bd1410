package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/FleetKeeper/internal/models"
)

var vehicleColumns = []string{
	"id", "assigned_driver", "car_model", "color", "current_mileage", "last_maintenance",
	"license_plate", "make", "next_maintenance", "notes", "sitting_capacity", "status",
	"type", "vin", "year",
}

// PostgresVehicleRepository implements vehicle persistence against a PostgreSQL database.
type PostgresVehicleRepository struct {
	DB *sql.DB
}

// NewPostgresVehicleRepository creates a new PostgresVehicleRepository using the provided *sql.DB.
func NewPostgresVehicleRepository(db *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{DB: db}
}

func scanVehicle(s scanner) (*models.Vehicle, error) {
	var v models.Vehicle
	err := s.Scan(&v.ID, &v.AssignedDriver, &v.CarModel, &v.Color, &v.CurrentMileage, &v.LastMaintenance,
		&v.LicensePlate, &v.Make, &v.NextMaintenance, &v.Notes, &v.SittingCapacity, &v.Status,
		&v.Type, &v.VIN, &v.Year)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// vehicleArgs lists the writable columns in vehicleColumns order, id excluded.
func vehicleArgs(v *models.Vehicle) []any {
	return []any{v.AssignedDriver, v.CarModel, v.Color, v.CurrentMileage, v.LastMaintenance,
		v.LicensePlate, v.Make, v.NextMaintenance, v.Notes, v.SittingCapacity, v.Status,
		v.Type, v.VIN, v.Year}
}

// Create inserts a vehicle and returns the stored row. The ID of in is ignored.
func (r *PostgresVehicleRepository) Create(ctx context.Context, in models.Vehicle) (*models.Vehicle, error) {
	v, err := scanVehicle(r.DB.QueryRowContext(ctx, `
		INSERT INTO vehicles (assigned_driver, car_model, color, current_mileage, last_maintenance,
			license_plate, make, next_maintenance, notes, sitting_capacity, status, type, vin, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+columns(vehicleColumns),
		vehicleArgs(&in)...,
	))
	if err != nil {
		return nil, fmt.Errorf("create vehicle: %w", translate(err))
	}
	return v, nil
}

// List returns a page of vehicles ordered by id.
func (r *PostgresVehicleRepository) List(ctx context.Context, page models.Page) ([]models.Vehicle, error) {
	vehicles, err := queryList(ctx, r.DB,
		`SELECT `+columns(vehicleColumns)+` FROM vehicles ORDER BY id LIMIT $1 OFFSET $2`,
		page, scanVehicle)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

// Get returns the vehicle with the given id or ErrNotFound.
func (r *PostgresVehicleRepository) Get(ctx context.Context, id int64) (*models.Vehicle, error) {
	v, err := scanVehicle(r.DB.QueryRowContext(ctx,
		`SELECT `+columns(vehicleColumns)+` FROM vehicles WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", translate(err))
	}
	return v, nil
}

// Update merges patch into the stored vehicle and returns the new row.
func (r *PostgresVehicleRepository) Update(ctx context.Context, id int64, patch models.VehiclePatch) (*models.Vehicle, error) {
	var updated *models.Vehicle
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		v, err := scanVehicle(tx.QueryRowContext(ctx,
			`SELECT `+columns(vehicleColumns)+` FROM vehicles WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		patch.Apply(v)

		updated, err = scanVehicle(tx.QueryRowContext(ctx, `
			UPDATE vehicles SET assigned_driver = $2, car_model = $3, color = $4, current_mileage = $5,
				last_maintenance = $6, license_plate = $7, make = $8, next_maintenance = $9, notes = $10,
				sitting_capacity = $11, status = $12, type = $13, vin = $14, year = $15
			WHERE id = $1
			RETURNING `+columns(vehicleColumns),
			append([]any{id}, vehicleArgs(v)...)...,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update vehicle: %w", translate(err))
	}
	return updated, nil
}

// Delete removes the vehicle and returns the deleted row.
func (r *PostgresVehicleRepository) Delete(ctx context.Context, id int64) (*models.Vehicle, error) {
	v, err := scanVehicle(r.DB.QueryRowContext(ctx,
		`DELETE FROM vehicles WHERE id = $1 RETURNING `+columns(vehicleColumns), id))
	if err != nil {
		return nil, fmt.Errorf("delete vehicle: %w", translate(err))
	}
	return v, nil
}
