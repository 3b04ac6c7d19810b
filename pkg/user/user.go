package user

import (
	"context"
	"time"
)

type User struct {
	ID           int64
	Email        string
	Name         *string
	Avatar       *string
	PasswordHash string
	CreatedAt    time.Time
}

// Public is the projection of a User that may leave the server.
type Public struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() Public {
	return Public{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// Repository is the credential store. FindByID never loads the password
// hash.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
}
