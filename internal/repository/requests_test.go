package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/FleetKeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceCreateAndUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresMaintenanceRepository(db)

	m := models.MaintenanceRequest{ID: 1, MaintenanceDate: "2024-05-01", MaintenancePersonID: 2,
		MileageAtService: 50000, ServiceType: "oil", Status: "planned", TotalCost: 120.5, VehicleID: 3}
	row := func(m models.MaintenanceRequest) []driver.Value {
		return []driver.Value{m.ID, m.MaintenanceDate, m.MaintenancePersonID, m.MileageAtService, m.Notes,
			m.ServiceType, m.Status, m.TotalCost, m.VehicleID}
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO maintenance_requests`)).
		WithArgs("2024-05-01", int64(2), 50000, "", "oil", "planned", 120.5, int64(3)).
		WillReturnRows(sqlmock.NewRows(maintenanceColumns).AddRow(row(m)...))

	created, err := repo.Create(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, m, *created)

	done := "done"
	want := m
	want.Status = done
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM maintenance_requests WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(maintenanceColumns).AddRow(row(m)...))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE maintenance_requests SET`)).
		WithArgs(int64(1), "2024-05-01", int64(2), 50000, "", "oil", "done", 120.5, int64(3)).
		WillReturnRows(sqlmock.NewRows(maintenanceColumns).AddRow(row(want)...))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), 1, models.MaintenanceRequestPatch{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, want, *updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceGetDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresMaintenanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM maintenance_requests WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(maintenanceColumns))
	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM maintenance_requests WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(maintenanceColumns))

	_, err = repo.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFuelingCreateAndList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresFuelingRepository(db)

	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	f := models.FuelingRequest{ID: 4, Amount: 45.2, FuelingPersonID: 2, GasStation: "Shell",
		TotalCost: 80, VehicleID: 3, Status: "pending", CreatedAt: ts, UpdatedAt: ts}
	row := []driver.Value{f.ID, f.AfterFuelingImage, f.Amount, f.BeforeFuelingImage, f.FuelingPersonID,
		f.GasStation, f.Notes, f.TotalCost, f.VehicleID, f.Status, f.CreatedAt, f.UpdatedAt}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO fueling_requests`)).
		WithArgs("", 45.2, "", int64(2), "Shell", "", 80.0, int64(3), "pending").
		WillReturnRows(sqlmock.NewRows(fuelingColumns).AddRow(row...))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM fueling_requests ORDER BY id LIMIT $1 OFFSET $2`)).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(fuelingColumns).AddRow(row...))

	created, err := repo.Create(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, f, *created)

	list, err := repo.List(context.Background(), models.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []models.FuelingRequest{f}, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFuelingUpdate_TouchesUpdatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresFuelingRepository(db)

	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	row := []driver.Value{int64(4), "", 45.2, "", int64(2), "Shell", "", 80.0, int64(3), "pending", ts, ts}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM fueling_requests WHERE id = $1 FOR UPDATE`)).
		WillReturnRows(sqlmock.NewRows(fuelingColumns).AddRow(row...))
	mock.ExpectQuery(regexp.QuoteMeta(`status = $10, updated_at = now()`)).
		WillReturnRows(sqlmock.NewRows(fuelingColumns).AddRow(row...))
	mock.ExpectCommit()

	_, err = repo.Update(context.Background(), 4, models.FuelingRequestPatch{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskCRUD(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresTaskRepository(db)

	task := models.Task{ID: 6, DriverID: 2, StartLatitude: 59.43, StartLongitude: 24.75,
		EndLatitude: 59.33, EndLongitude: 18.06, StartTime: "08:00", EndTime: "17:00", Status: "new"}
	row := []driver.Value{task.ID, task.DriverID, task.StartLatitude, task.StartLongitude, task.EndLatitude,
		task.EndLongitude, task.StartTime, task.EndTime, task.Notes, task.Status}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tasks`)).
		WithArgs(int64(2), 59.43, 24.75, 59.33, 18.06, "08:00", "17:00", "", "new").
		WillReturnRows(sqlmock.NewRows(taskColumns).AddRow(row...))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tasks WHERE id = $1`)).
		WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows(taskColumns).AddRow(row...))
	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1`)).
		WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows(taskColumns).AddRow(row...))

	created, err := repo.Create(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, task, *created)

	got, err := repo.Get(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, task, *got)

	deleted, err := repo.Delete(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, task, *deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuctionCreateAndUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresAuctionRepository(db)

	listing := models.AuctionVehicle{ID: 1, Status: "open", Description: "low mileage", StartingBid: 5000,
		VehicleID: 3}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO auction_vehicles`)).
		WithArgs("open", "low mileage", 5000.0, "", int64(3), nil, nil).
		WillReturnRows(sqlmock.NewRows(auctionColumns).
			AddRow(int64(1), "open", "low mileage", 5000.0, "", int64(3), nil, nil))

	created, err := repo.Create(context.Background(), listing)
	require.NoError(t, err)
	assert.Equal(t, listing, *created)

	buyer := int64(9)
	price := 6100.0
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM auction_vehicles WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(auctionColumns).
			AddRow(int64(1), "open", "low mileage", 5000.0, "", int64(3), nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE auction_vehicles SET`)).
		WithArgs(int64(1), "open", "low mileage", 5000.0, "", int64(3), int64(9), 6100.0).
		WillReturnRows(sqlmock.NewRows(auctionColumns).
			AddRow(int64(1), "open", "low mileage", 5000.0, "", int64(3), int64(9), 6100.0))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), 1, models.AuctionVehiclePatch{BoughtUser: models.NullableOf(buyer), FinalPrice: models.NullableOf(price)})
	require.NoError(t, err)
	require.NotNil(t, updated.BoughtUser)
	assert.Equal(t, int64(9), *updated.BoughtUser)
	assert.Equal(t, 6100.0, *updated.FinalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}
