package accounts

import "time"

type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Patch is a partial update. Empty strings and a nil IsAdmin leave the
// stored value alone.
type Patch struct {
	Name     string
	Email    string
	Password string
	IsAdmin  *bool
}

const (
	MsgAdminNotDeleted = "admin cannot be deleted"
	MsgUserDeleted     = "User deleted"
)
