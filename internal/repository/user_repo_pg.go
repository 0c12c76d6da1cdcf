package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/rente/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

// elevate enforces the save-time invariant: an admin user always carries the
// staff and superuser flags, no matter which code path persists the record.
func elevate(user *domain.User) {
	if user.Role == domain.RoleAdmin {
		user.IsStaff = true
		user.IsSuperuser = true
	}
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	elevate(user)
	err := r.db.QueryRow(ctx, `INSERT INTO users (username, email, password_hash, role, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		user.Username, user.Email, user.PasswordHash, user.Role, user.IsStaff, user.IsSuperuser).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return domain.NewValidationError("username", "username is already taken")
		}
		if isUniqueViolation(err, "users_email_key") {
			return domain.NewValidationError("email", "email is already registered")
		}
		return err
	}
	return nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, email, password_hash, role, is_staff, is_superuser, created_at
		FROM users WHERE id=$1`, id)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *PGUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, email, password_hash, role, is_staff, is_superuser, created_at
		FROM users WHERE username=$1`, username)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *PGUserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, username, email, password_hash, role, is_staff, is_superuser, created_at
		FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PGUserRepository) Update(ctx context.Context, user *domain.User) error {
	elevate(user)
	cmd, err := r.db.Exec(ctx, `UPDATE users SET username=$1, email=$2, password_hash=$3, role=$4, is_staff=$5, is_superuser=$6
		WHERE id=$7`,
		user.Username, user.Email, user.PasswordHash, user.Role, user.IsStaff, user.IsSuperuser, user.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ UserRepository = (*PGUserRepository)(nil)
