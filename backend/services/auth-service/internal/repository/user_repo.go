package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"everse/backend/services/auth-service/internal/models"
)

var (
	// ErrUserNotFound represents missing user rows.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the unique email index rejects an insert.
	ErrDuplicateEmail = errors.New("user email already exists")
)

const uniqueViolation = "23505"

// UserRepository handles CRUD for users table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository returns repository instance.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user together with the profile columns.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	const query = `
		INSERT INTO users (email, password_hash, role, name, phone, car_model, charger_model,
			company_name, business_email, license_number, manufacturer_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	p := user.Profile
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Role, p.Name, p.Phone, p.CarModel, p.ChargerModel,
		p.CompanyName, p.BusinessEmail, p.LicenseNumber, p.ManufacturerType,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

const selectUser = `
	SELECT id, email, password_hash, role, name, phone, car_model, charger_model,
		company_name, business_email, license_number, manufacturer_type, created_at
	FROM users
`

// GetByEmail fetches a user by normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+" WHERE email = $1", strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

// GetByID fetches a user by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+" WHERE id = $1", id))
}

// UpdatePasswordHash replaces the stored hash.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	p := &user.Profile
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &p.Name, &p.Phone,
		&p.CarModel, &p.ChargerModel, &p.CompanyName, &p.BusinessEmail, &p.LicenseNumber,
		&p.ManufacturerType, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
