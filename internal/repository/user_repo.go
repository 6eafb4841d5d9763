package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"evcharge/internal/models"
)

// ErrUserNotFound represents missing user rows.
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles CRUD for the users table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository returns repository instance.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, nic, first_name, last_name, email, password_hash, role, station_id, phone_number, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	var stationID, phone sql.NullString
	err := row.Scan(
		&u.ID,
		&u.NIC,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&stationID,
		&phone,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.StationID = stationID.String
	u.PhoneNumber = phone.String
	return &u, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	const query = `
		INSERT INTO users (id, nic, first_name, last_name, email, password_hash, role, station_id, phone_number, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		user.ID,
		user.NIC,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.StationID,
		user.PhoneNumber,
		user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

// GetByEmail fetches a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return scanUser(r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

// GetByNIC fetches a user by NIC.
func (r *UserRepository) GetByNIC(ctx context.Context, nic string) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE nic = $1 LIMIT 1`
	return scanUser(r.db.QueryRowContext(ctx, query, nic))
}

// Update persists mutable profile fields.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	const query = `
		UPDATE users
		SET first_name = $2,
		    last_name = $3,
		    password_hash = $4,
		    phone_number = NULLIF($5, ''),
		    updated_at = NOW()
		WHERE nic = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.NIC,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.PhoneNumber,
	).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	return err
}

// SetActive toggles the account's active flag.
func (r *UserRepository) SetActive(ctx context.Context, nic string, active bool) error {
	const query = `UPDATE users SET is_active = $2, updated_at = NOW() WHERE nic = $1`
	result, err := r.db.ExecContext(ctx, query, nic, active)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// List returns every account (back-office view).
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
