package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/FleetKeeper/internal/models"
)

var maintenanceColumns = []string{
	"id", "maintenance_date", "maintenance_person_id", "mileage_at_service", "notes",
	"service_type", "status", "total_cost", "vehicle_id",
}

// PostgresMaintenanceRepository implements maintenance request persistence.
type PostgresMaintenanceRepository struct {
	DB *sql.DB
}

// NewPostgresMaintenanceRepository creates a new PostgresMaintenanceRepository using the provided *sql.DB.
func NewPostgresMaintenanceRepository(db *sql.DB) *PostgresMaintenanceRepository {
	return &PostgresMaintenanceRepository{DB: db}
}

func scanMaintenance(s scanner) (*models.MaintenanceRequest, error) {
	var m models.MaintenanceRequest
	err := s.Scan(&m.ID, &m.MaintenanceDate, &m.MaintenancePersonID, &m.MileageAtService, &m.Notes,
		&m.ServiceType, &m.Status, &m.TotalCost, &m.VehicleID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func maintenanceArgs(m *models.MaintenanceRequest) []any {
	return []any{m.MaintenanceDate, m.MaintenancePersonID, m.MileageAtService, m.Notes,
		m.ServiceType, m.Status, m.TotalCost, m.VehicleID}
}

// Create inserts a maintenance request.
func (r *PostgresMaintenanceRepository) Create(ctx context.Context, in models.MaintenanceRequest) (*models.MaintenanceRequest, error) {
	m, err := scanMaintenance(r.DB.QueryRowContext(ctx, `
		INSERT INTO maintenance_requests (maintenance_date, maintenance_person_id, mileage_at_service,
			notes, service_type, status, total_cost, vehicle_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+columns(maintenanceColumns),
		maintenanceArgs(&in)...,
	))
	if err != nil {
		return nil, fmt.Errorf("create maintenance request: %w", translate(err))
	}
	return m, nil
}

// List returns a page of maintenance requests ordered by id.
func (r *PostgresMaintenanceRepository) List(ctx context.Context, page models.Page) ([]models.MaintenanceRequest, error) {
	out, err := queryList(ctx, r.DB,
		`SELECT `+columns(maintenanceColumns)+` FROM maintenance_requests ORDER BY id LIMIT $1 OFFSET $2`,
		page, scanMaintenance)
	if err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}
	return out, nil
}

// Get returns the maintenance request with the given id or ErrNotFound.
func (r *PostgresMaintenanceRepository) Get(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	m, err := scanMaintenance(r.DB.QueryRowContext(ctx,
		`SELECT `+columns(maintenanceColumns)+` FROM maintenance_requests WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get maintenance request: %w", translate(err))
	}
	return m, nil
}

// Update merges patch into the stored request and returns the new row.
func (r *PostgresMaintenanceRepository) Update(ctx context.Context, id int64, patch models.MaintenanceRequestPatch) (*models.MaintenanceRequest, error) {
	var updated *models.MaintenanceRequest
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		m, err := scanMaintenance(tx.QueryRowContext(ctx,
			`SELECT `+columns(maintenanceColumns)+` FROM maintenance_requests WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		patch.Apply(m)

		updated, err = scanMaintenance(tx.QueryRowContext(ctx, `
			UPDATE maintenance_requests SET maintenance_date = $2, maintenance_person_id = $3,
				mileage_at_service = $4, notes = $5, service_type = $6, status = $7, total_cost = $8,
				vehicle_id = $9
			WHERE id = $1
			RETURNING `+columns(maintenanceColumns),
			append([]any{id}, maintenanceArgs(m)...)...,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update maintenance request: %w", translate(err))
	}
	return updated, nil
}

// Delete removes the maintenance request and returns the deleted row.
func (r *PostgresMaintenanceRepository) Delete(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	m, err := scanMaintenance(r.DB.QueryRowContext(ctx,
		`DELETE FROM maintenance_requests WHERE id = $1 RETURNING `+columns(maintenanceColumns), id))
	if err != nil {
		return nil, fmt.Errorf("delete maintenance request: %w", translate(err))
	}
	return m, nil
}

var fuelingColumns = []string{
	"id", "after_fueling_image", "amount", "before_fueling_image", "fueling_person_id",
	"gas_station", "notes", "total_cost", "vehicle_id", "status", "created_at", "updated_at",
}

// PostgresFuelingRepository implements fueling request persistence.
// created_at and updated_at are maintained by the database.
type PostgresFuelingRepository struct {
	DB *sql.DB
}

// NewPostgresFuelingRepository creates a new PostgresFuelingRepository using the provided *sql.DB.
func NewPostgresFuelingRepository(db *sql.DB) *PostgresFuelingRepository {
	return &PostgresFuelingRepository{DB: db}
}

func scanFueling(s scanner) (*models.FuelingRequest, error) {
	var f models.FuelingRequest
	err := s.Scan(&f.ID, &f.AfterFuelingImage, &f.Amount, &f.BeforeFuelingImage, &f.FuelingPersonID,
		&f.GasStation, &f.Notes, &f.TotalCost, &f.VehicleID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func fuelingArgs(f *models.FuelingRequest) []any {
	return []any{f.AfterFuelingImage, f.Amount, f.BeforeFuelingImage, f.FuelingPersonID,
		f.GasStation, f.Notes, f.TotalCost, f.VehicleID, f.Status}
}

// Create inserts a fueling request.
func (r *PostgresFuelingRepository) Create(ctx context.Context, in models.FuelingRequest) (*models.FuelingRequest, error) {
	f, err := scanFueling(r.DB.QueryRowContext(ctx, `
		INSERT INTO fueling_requests (after_fueling_image, amount, before_fueling_image,
			fueling_person_id, gas_station, notes, total_cost, vehicle_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+columns(fuelingColumns),
		fuelingArgs(&in)...,
	))
	if err != nil {
		return nil, fmt.Errorf("create fueling request: %w", translate(err))
	}
	return f, nil
}

// List returns a page of fueling requests ordered by id.
func (r *PostgresFuelingRepository) List(ctx context.Context, page models.Page) ([]models.FuelingRequest, error) {
	out, err := queryList(ctx, r.DB,
		`SELECT `+columns(fuelingColumns)+` FROM fueling_requests ORDER BY id LIMIT $1 OFFSET $2`,
		page, scanFueling)
	if err != nil {
		return nil, fmt.Errorf("list fueling requests: %w", err)
	}
	return out, nil
}

// Get returns the fueling request with the given id or ErrNotFound.
func (r *PostgresFuelingRepository) Get(ctx context.Context, id int64) (*models.FuelingRequest, error) {
	f, err := scanFueling(r.DB.QueryRowContext(ctx,
		`SELECT `+columns(fuelingColumns)+` FROM fueling_requests WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get fueling request: %w", translate(err))
	}
	return f, nil
}

// Update merges patch into the stored request, bumps updated_at and returns the new row.
func (r *PostgresFuelingRepository) Update(ctx context.Context, id int64, patch models.FuelingRequestPatch) (*models.FuelingRequest, error) {
	var updated *models.FuelingRequest
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		f, err := scanFueling(tx.QueryRowContext(ctx,
			`SELECT `+columns(fuelingColumns)+` FROM fueling_requests WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		patch.Apply(f)

		updated, err = scanFueling(tx.QueryRowContext(ctx, `
			UPDATE fueling_requests SET after_fueling_image = $2, amount = $3, before_fueling_image = $4,
				fueling_person_id = $5, gas_station = $6, notes = $7, total_cost = $8, vehicle_id = $9,
				status = $10, updated_at = now()
			WHERE id = $1
			RETURNING `+columns(fuelingColumns),
			append([]any{id}, fuelingArgs(f)...)...,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update fueling request: %w", translate(err))
	}
	return updated, nil
}

// Delete removes the fueling request and returns the deleted row.
func (r *PostgresFuelingRepository) Delete(ctx context.Context, id int64) (*models.FuelingRequest, error) {
	f, err := scanFueling(r.DB.QueryRowContext(ctx,
		`DELETE FROM fueling_requests WHERE id = $1 RETURNING `+columns(fuelingColumns), id))
	if err != nil {
		return nil, fmt.Errorf("delete fueling request: %w", translate(err))
	}
	return f, nil
}
