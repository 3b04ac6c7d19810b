package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

const errDuplicateEntry = 1062

type MySQLRepo struct {
	DB *sql.DB
}

func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{DB: db}
}

func (r *MySQLRepo) Create(ctx context.Context, user *User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password, name, avatar, created_at) VALUES (?, ?, ?, ?, ?)",
		user.Email, user.PasswordHash, nullString(user.Name), nullString(user.Avatar), user.CreatedAt,
	)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errDuplicateEntry {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user id: %w", err)
	}
	user.ID = id
	return nil
}

func (r *MySQLRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	var (
		u            User
		name, avatar sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, password, name, avatar, created_at FROM users WHERE email = ?",
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &name, &avatar, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	u.Name, u.Avatar = stringPtr(name), stringPtr(avatar)
	return &u, nil
}

func (r *MySQLRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	var (
		u            User
		name, avatar sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, name, avatar, created_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Email, &name, &avatar, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	u.Name, u.Avatar = stringPtr(name), stringPtr(avatar)
	return &u, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
