package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `user_id, full_name, role, pin_hash, hourly_rate`

// UserRepo implementación del puerto UserRepository.
type UserRepo struct {
	conn
}

// NewUserRepository construye el repositorio de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier, d Dialect) *UserRepo {
	return &UserRepo{conn{q: q, d: d}}
}

// Create persiste un usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	id, err := r.insertReturningID(ctx, `
		INSERT INTO users (full_name, role, pin_hash, hourly_rate, created_at)
		VALUES (?, ?, ?, ?, ?) RETURNING user_id`,
		u.FullName, u.Role, u.PinHash, u.HourlyRate, nowUTC(),
	)
	if err != nil {
		if r.d.IsUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = id
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var u entity.User
	err := r.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, id).
		Scan(&u.ID, &u.FullName, &u.Role, &u.PinHash, &u.HourlyRate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// List lista todos los usuarios por nombre.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY full_name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return scanUsers(rows)
}

// ListByRole lista usuarios de un rol.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	rows, err := r.query(ctx, `SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY full_name`, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return scanUsers(rows)
}

// UpdateHourlyRate cambia la tarifa por hora del usuario. No afecta cargos ya registrados.
func (r *UserRepo) UpdateHourlyRate(ctx context.Context, id int64, rate decimal.Decimal) error {
	res, err := r.exec(ctx, `UPDATE users SET hourly_rate = ? WHERE user_id = ?`, rate, id)
	if err != nil {
		return fmt.Errorf("update hourly rate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("usuario %d", id)
	}
	return nil
}

// Count devuelve la cantidad de usuarios.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.queryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func scanUsers(rows *sql.Rows) ([]*entity.User, error) {
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Role, &u.PinHash, &u.HourlyRate); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
