package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.email, u.password_hash, u.full_name, u.role_id, r.role_name, u.department_id,
	u.hire_date, u.is_active, u.reset_password_token, u.reset_password_expires,
	u.created_at, u.updated_at, d.name
`

const userFrom = `
	FROM users u
	JOIN roles r ON r.id = u.role_id
	LEFT JOIN departments d ON d.id = u.department_id
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.RoleID, &u.Role, &u.DepartmentID,
		&u.HireDate, &u.IsActive, &u.ResetPasswordToken, &u.ResetPasswordExpires,
		&u.CreatedAt, &u.UpdatedAt, &u.DepartmentName,
	)
	return u, err
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg interface{}) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+userFrom+` WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, `LOWER(u.email) = LOWER($1)`, email)
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, `u.id = $1`, id)
}

// GetByResetToken implements user.UserRepository.
func (r *userRepositoryImpl) GetByResetToken(ctx context.Context, token string) (user.User, error) {
	return r.getOne(ctx, `u.reset_password_token = $1`, token)
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	err := q.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, full_name, role_id, department_id, hire_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`, newUser.ID, newUser.Email, newUser.PasswordHash, newUser.FullName, newUser.RoleID,
		newUser.DepartmentID, newUser.HireDate, newUser.IsActive,
	).Scan(&newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		if isForeignKeyViolation(err) {
			return user.User{}, user.ErrDepartmentNotFound
		}
		return user.User{}, err
	}
	return newUser, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.UserFilter) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	var where []string
	var args []interface{}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		where = append(where, fmt.Sprintf("u.department_id = $%d", len(args)))
	}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		where = append(where, fmt.Sprintf("r.role_name = $%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where = append(where, fmt.Sprintf("u.is_active = $%d", len(args)))
	}

	query := `SELECT ` + userColumns + userFrom
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY u.full_name, u.email"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListActive implements user.UserRepository.
func (r *userRepositoryImpl) ListActive(ctx context.Context) ([]user.User, error) {
	active := true
	return r.List(ctx, user.UserFilter{Active: &active})
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, id string, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	if req.Email != nil {
		args = append(args, *req.Email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if req.FullName != nil {
		args = append(args, *req.FullName)
		sets = append(sets, fmt.Sprintf("full_name = $%d", len(args)))
	}
	if req.DepartmentID != nil {
		args = append(args, *req.DepartmentID)
		sets = append(sets, fmt.Sprintf("department_id = $%d", len(args)))
	}
	if req.IsActive != nil {
		args = append(args, *req.IsActive)
		sets = append(sets, fmt.Sprintf("is_active = $%d", len(args)))
	}

	tag, err := q.Exec(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrUserEmailExists
		}
		if isForeignKeyViolation(err) {
			return user.ErrDepartmentNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateRole implements user.UserRepository.
func (r *userRepositoryImpl) UpdateRole(ctx context.Context, id string, roleID int) error {
	return r.exec(ctx, `UPDATE users SET role_id = $2, updated_at = NOW() WHERE id = $1`, id, roleID)
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, `
		UPDATE users
		SET password_hash = $2, reset_password_token = NULL, reset_password_expires = NULL, updated_at = NOW()
		WHERE id = $1
	`, id, passwordHash)
}

// SetResetToken implements user.UserRepository.
func (r *userRepositoryImpl) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	return r.exec(ctx, `
		UPDATE users SET reset_password_token = $2, reset_password_expires = $3 WHERE id = $1
	`, id, token, expires)
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (r *userRepositoryImpl) exec(ctx context.Context, query string, args ...interface{}) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// CountActive implements user.UserRepository.
func (r *userRepositoryImpl) CountActive(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)
	var n int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_active`).Scan(&n)
	return n, err
}

// GetRoleByName implements user.UserRepository.
func (r *userRepositoryImpl) GetRoleByName(ctx context.Context, name user.Role) (user.RoleInfo, error) {
	q := GetQuerier(ctx, r.db)
	var role user.RoleInfo
	err := q.QueryRow(ctx, `SELECT id, role_name FROM roles WHERE role_name = $1`, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.RoleInfo{}, user.ErrRoleNotFound
		}
		return user.RoleInfo{}, err
	}
	return role, nil
}

// ListRoles implements user.UserRepository.
func (r *userRepositoryImpl) ListRoles(ctx context.Context) ([]user.RoleInfo, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT id, role_name FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []user.RoleInfo{}
	for rows.Next() {
		var role user.RoleInfo
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetDepartment implements user.UserRepository.
func (r *userRepositoryImpl) GetDepartment(ctx context.Context, id string) (user.Department, error) {
	q := GetQuerier(ctx, r.db)
	var d user.Department
	err := q.QueryRow(ctx, `SELECT id, name FROM departments WHERE id = $1`, id).Scan(&d.ID, &d.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Department{}, user.ErrDepartmentNotFound
		}
		return user.Department{}, err
	}
	return d, nil
}

// ListDepartments implements user.UserRepository.
func (r *userRepositoryImpl) ListDepartments(ctx context.Context) ([]user.Department, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []user.Department{}
	for rows.Next() {
		var d user.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
