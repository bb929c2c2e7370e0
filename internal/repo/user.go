package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
)

// UserRepo defines the persistence operations for user accounts.
type UserRepo interface {
	// Insert creates a new user and returns the persisted record.
	// A duplicate email or phone returns a wrapped domain.ErrEmailTaken
	// (the unique constraints are the source of truth, not a pre-check).
	Insert(ctx context.Context, user domain.User) (domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns domain.ErrNotFound if no such user exists.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByID retrieves a user by primary key.
	// Returns domain.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, phone, city_name, country_name, created_at, updated_at`

// Insert creates a new user row and returns the full persisted record.
func (r *pgUserRepo) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (first_name, last_name, email, password_hash, phone, city_name, country_name)
		VALUES (@first_name, @last_name, @email, @password_hash, @phone, @city_name, @country_name)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"phone":         nullIfEmpty(user.Phone),
		"city_name":     nullIfEmpty(user.CityName),
		"country_name":  nullIfEmpty(user.CountryName),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Insert: %w", domain.ErrEmailTaken)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Insert: %w", err)
	}
	return result, nil
}

// GetByEmail retrieves a user by email address.
func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = @email`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

// GetByID retrieves a user by primary key.
func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u       domain.User
		id      pgtype.UUID
		phone   pgtype.Text
		city    pgtype.Text
		country pgtype.Text
	)

	err := s.Scan(&id, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&phone, &city, &country, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	u.Phone = phone.String
	u.CityName = city.String
	u.CountryName = country.String

	return u, nil
}

// nullIfEmpty maps an optional string field to NULL instead of the empty
// string, so partial unique indexes on these columns behave.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
