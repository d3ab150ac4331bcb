package models

import "time"

// UserDB represents a user row in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                 // Primary key
	Name         string    `json:"name" db:"name"`             // Display name
	Email        string    `json:"email" db:"email"`           // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`       // Hashed password, never serialized
	Age          *int      `json:"age" db:"age"`               // Optional age
	IsActive     bool      `json:"is_active" db:"is_active"`   // false means soft-deleted
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// User is the outward-facing view of a user. It carries no password field
// so a hash cannot leak through serialization.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// View converts a database row to its outward representation.
func (u *UserDB) View() User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserPatch lists the fields a partial update may carry. Nil pointers mean
// "leave untouched"; PasswordHash is set by the service after re-hashing.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Age          *int
	IsActive     *bool
}

// IsEmpty reports whether the patch carries no fields at all.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil && p.Age == nil && p.IsActive == nil
}
