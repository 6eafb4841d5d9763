package models

import "time"

// UserRole is the numeric wire role stored on user records and carried in
// JWT claims.
type UserRole int

const (
	RoleBackoffice      UserRole = 0
	RoleStationOperator UserRole = 1
	RoleEVOwner         UserRole = 2
)

// Valid reports whether the value is a defined role.
func (r UserRole) Valid() bool {
	return r >= RoleBackoffice && r <= RoleEVOwner
}

// User is an account. The NIC is the national-id-like string bookings and
// notifications are keyed by.
type User struct {
	ID           string    `db:"id"`
	NIC          string    `db:"nic"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         UserRole  `db:"role"`
	StationID    string    `db:"station_id"`
	PhoneNumber  string    `db:"phone_number"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
