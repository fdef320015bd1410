package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/FleetKeeper/internal/models"
)

var auctionColumns = []string{
	"id", "status", "description", "starting_bid", "image", "vehicle_id", "bought_user", "final_price",
}

// PostgresAuctionRepository implements auction listing persistence.
type PostgresAuctionRepository struct {
	DB *sql.DB
}

// NewPostgresAuctionRepository creates a new PostgresAuctionRepository using the provided *sql.DB.
func NewPostgresAuctionRepository(db *sql.DB) *PostgresAuctionRepository {
	return &PostgresAuctionRepository{DB: db}
}

func scanAuction(s scanner) (*models.AuctionVehicle, error) {
	var a models.AuctionVehicle
	err := s.Scan(&a.ID, &a.Status, &a.Description, &a.StartingBid, &a.Image, &a.VehicleID,
		&a.BoughtUser, &a.FinalPrice)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func auctionArgs(a *models.AuctionVehicle) []any {
	return []any{a.Status, a.Description, a.StartingBid, a.Image, a.VehicleID, a.BoughtUser, a.FinalPrice}
}

// Create inserts an auction listing.
func (r *PostgresAuctionRepository) Create(ctx context.Context, in models.AuctionVehicle) (*models.AuctionVehicle, error) {
	a, err := scanAuction(r.DB.QueryRowContext(ctx, `
		INSERT INTO auction_vehicles (status, description, starting_bid, image, vehicle_id,
			bought_user, final_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+columns(auctionColumns),
		auctionArgs(&in)...,
	))
	if err != nil {
		return nil, fmt.Errorf("create auction vehicle: %w", translate(err))
	}
	return a, nil
}

// List returns a page of auction listings ordered by id.
func (r *PostgresAuctionRepository) List(ctx context.Context, page models.Page) ([]models.AuctionVehicle, error) {
	out, err := queryList(ctx, r.DB,
		`SELECT `+columns(auctionColumns)+` FROM auction_vehicles ORDER BY id LIMIT $1 OFFSET $2`,
		page, scanAuction)
	if err != nil {
		return nil, fmt.Errorf("list auction vehicles: %w", err)
	}
	return out, nil
}

// Get returns the auction listing with the given id or ErrNotFound.
func (r *PostgresAuctionRepository) Get(ctx context.Context, id int64) (*models.AuctionVehicle, error) {
	a, err := scanAuction(r.DB.QueryRowContext(ctx,
		`SELECT `+columns(auctionColumns)+` FROM auction_vehicles WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get auction vehicle: %w", translate(err))
	}
	return a, nil
}

// Update merges patch into the stored listing and returns the new row.
func (r *PostgresAuctionRepository) Update(ctx context.Context, id int64, patch models.AuctionVehiclePatch) (*models.AuctionVehicle, error) {
	var updated *models.AuctionVehicle
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		a, err := scanAuction(tx.QueryRowContext(ctx,
			`SELECT `+columns(auctionColumns)+` FROM auction_vehicles WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		patch.Apply(a)

		updated, err = scanAuction(tx.QueryRowContext(ctx, `
			UPDATE auction_vehicles SET status = $2, description = $3, starting_bid = $4, image = $5,
				vehicle_id = $6, bought_user = $7, final_price = $8
			WHERE id = $1
			RETURNING `+columns(auctionColumns),
			append([]any{id}, auctionArgs(a)...)...,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update auction vehicle: %w", translate(err))
	}
	return updated, nil
}

// Delete removes the auction listing and returns the deleted row.
func (r *PostgresAuctionRepository) Delete(ctx context.Context, id int64) (*models.AuctionVehicle, error) {
	a, err := scanAuction(r.DB.QueryRowContext(ctx,
		`DELETE FROM auction_vehicles WHERE id = $1 RETURNING `+columns(auctionColumns), id))
	if err != nil {
		return nil, fmt.Errorf("delete auction vehicle: %w", translate(err))
	}
	return a, nil
}
