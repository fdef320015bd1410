package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/FleetKeeper/internal/models"
)

var userColumns = []string{
	"id", "username", "role", "address", "driving_license_number", "email",
	"first_name", "government_id", "last_name", "middle_name", "phone_number",
}

// PostgresUserRepository is the credential store: user rows and their
// password hashes in a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

func scanUser(s scanner) (*models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.Username, &u.Role, &u.Address, &u.DrivingLicenseNumber, &u.Email,
		&u.FirstName, &u.GovernmentID, &u.LastName, &u.MiddleName, &u.PhoneNumber)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername looks up a user by exact, case-sensitive username and returns
// the row together with its password hash.
// Returns ErrNotFound if no such user exists.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.UserCredentials, error) {
	var c models.UserCredentials
	u := &c.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+columns(userColumns)+`, password FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Role, &u.Address, &u.DrivingLicenseNumber, &u.Email,
		&u.FirstName, &u.GovernmentID, &u.LastName, &u.MiddleName, &u.PhoneNumber, &c.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", translate(err))
	}
	return &c, nil
}

// Create inserts a user with an already hashed password.
// Returns ErrConflict if the username is taken.
func (r *PostgresUserRepository) Create(ctx context.Context, u models.User, passwordHash string) (*models.User, error) {
	created, err := scanUser(r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, password, role, address, driving_license_number, email,
			first_name, government_id, last_name, middle_name, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+columns(userColumns),
		u.Username, passwordHash, u.Role, u.Address, u.DrivingLicenseNumber, u.Email,
		u.FirstName, u.GovernmentID, u.LastName, u.MiddleName, u.PhoneNumber,
	))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", translate(err))
	}
	return created, nil
}

// List returns a page of users ordered by id.
func (r *PostgresUserRepository) List(ctx context.Context, page models.Page) ([]models.User, error) {
	users, err := queryList(ctx, r.DB,
		`SELECT `+columns(userColumns)+` FROM users ORDER BY id LIMIT $1 OFFSET $2`,
		page, scanUser)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns the user with the given id or ErrNotFound.
func (r *PostgresUserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+columns(userColumns)+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", translate(err))
	}
	return u, nil
}

// Update applies patch to the user row. When passwordHash is non-nil the stored
// hash is replaced as well.
func (r *PostgresUserRepository) Update(ctx context.Context, id int64, patch models.UserPatch, passwordHash *string) (*models.User, error) {
	var updated *models.User
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		u, err := scanUser(tx.QueryRowContext(ctx,
			`SELECT `+columns(userColumns)+` FROM users WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		patch.Apply(u)

		updated, err = scanUser(tx.QueryRowContext(ctx, `
			UPDATE users SET username = $2, password = COALESCE($3, password), role = $4, address = $5,
				driving_license_number = $6, email = $7, first_name = $8, government_id = $9,
				last_name = $10, middle_name = $11, phone_number = $12
			WHERE id = $1
			RETURNING `+columns(userColumns),
			id, u.Username, passwordHash, u.Role, u.Address, u.DrivingLicenseNumber, u.Email,
			u.FirstName, u.GovernmentID, u.LastName, u.MiddleName, u.PhoneNumber,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", translate(err))
	}
	return updated, nil
}

// Delete removes the user and returns the deleted row.
// Returns ErrReference while other rows still point at the user.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`DELETE FROM users WHERE id = $1 RETURNING `+columns(userColumns), id))
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", translate(err))
	}
	return u, nil
}
