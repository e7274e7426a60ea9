package postgres

import (
	"context"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
)

const userColumns = `id, email, name, password_hash, is_active, is_staff, is_superuser, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.IsActive,
		&u.IsStaff,
		&u.IsSuperuser,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context, lq domain.ListQuery) ([]domain.User, error) {
	lq = lq.Normalized()

	var q query
	q.sb.WriteString(`SELECT ` + userColumns + ` FROM users WHERE TRUE`)
	for _, term := range lq.SearchTerms() {
		p := q.arg(likeTerm(term))
		q.sb.WriteString(` AND (name ILIKE ` + p + ` OR email ILIKE ` + p + `)`)
	}
	q.sb.WriteString(` ORDER BY created_at, id LIMIT ` + q.arg(lq.Limit) + ` OFFSET ` + q.arg(lq.Offset))

	rows, err := r.db.QueryContext(ctx, q.sb.String(), q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID,
		u.Email,
		u.Name,
		u.PasswordHash,
		u.IsActive,
		u.IsStaff,
		u.IsSuperuser,
		u.CreatedAt.UTC(),
		u.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = $1, name = $2, password_hash = $3,
		    is_active = $4, is_staff = $5, is_superuser = $6, updated_at = $7
		WHERE id = $8`,
		u.Email,
		u.Name,
		u.PasswordHash,
		u.IsActive,
		u.IsStaff,
		u.IsSuperuser,
		u.UpdatedAt.UTC(),
		u.ID,
	)
	return requireAffected(res, mapConstraint(err))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id))
}

func (r *usersRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
