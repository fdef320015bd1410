package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/FleetKeeper/internal/models"
)

var taskColumns = []string{
	"id", "driver_id", "start_latitude", "start_longitude", "end_latitude", "end_longitude",
	"start_time", "end_time", "notes", "status",
}

// PostgresTaskRepository implements task persistence against a PostgreSQL database.
type PostgresTaskRepository struct {
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository using the provided *sql.DB.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

func scanTask(s scanner) (*models.Task, error) {
	var t models.Task
	err := s.Scan(&t.ID, &t.DriverID, &t.StartLatitude, &t.StartLongitude, &t.EndLatitude, &t.EndLongitude,
		&t.StartTime, &t.EndTime, &t.Notes, &t.Status)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func taskArgs(t *models.Task) []any {
	return []any{t.DriverID, t.StartLatitude, t.StartLongitude, t.EndLatitude, t.EndLongitude,
		t.StartTime, t.EndTime, t.Notes, t.Status}
}

// Create inserts a task.
func (r *PostgresTaskRepository) Create(ctx context.Context, in models.Task) (*models.Task, error) {
	t, err := scanTask(r.DB.QueryRowContext(ctx, `
		INSERT INTO tasks (driver_id, start_latitude, start_longitude, end_latitude, end_longitude,
			start_time, end_time, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+columns(taskColumns),
		taskArgs(&in)...,
	))
	if err != nil {
		return nil, fmt.Errorf("create task: %w", translate(err))
	}
	return t, nil
}

// List returns a page of tasks ordered by id.
func (r *PostgresTaskRepository) List(ctx context.Context, page models.Page) ([]models.Task, error) {
	out, err := queryList(ctx, r.DB,
		`SELECT `+columns(taskColumns)+` FROM tasks ORDER BY id LIMIT $1 OFFSET $2`,
		page, scanTask)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

// Get returns the task with the given id or ErrNotFound.
func (r *PostgresTaskRepository) Get(ctx context.Context, id int64) (*models.Task, error) {
	t, err := scanTask(r.DB.QueryRowContext(ctx,
		`SELECT `+columns(taskColumns)+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get task: %w", translate(err))
	}
	return t, nil
}

// Update merges patch into the stored task and returns the new row.
func (r *PostgresTaskRepository) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	var updated *models.Task
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		t, err := scanTask(tx.QueryRowContext(ctx,
			`SELECT `+columns(taskColumns)+` FROM tasks WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		patch.Apply(t)

		updated, err = scanTask(tx.QueryRowContext(ctx, `
			UPDATE tasks SET driver_id = $2, start_latitude = $3, start_longitude = $4, end_latitude = $5,
				end_longitude = $6, start_time = $7, end_time = $8, notes = $9, status = $10
			WHERE id = $1
			RETURNING `+columns(taskColumns),
			append([]any{id}, taskArgs(t)...)...,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", translate(err))
	}
	return updated, nil
}

// Delete removes the task and returns the deleted row.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id int64) (*models.Task, error) {
	t, err := scanTask(r.DB.QueryRowContext(ctx,
		`DELETE FROM tasks WHERE id = $1 RETURNING `+columns(taskColumns), id))
	if err != nil {
		return nil, fmt.Errorf("delete task: %w", translate(err))
	}
	return t, nil
}
