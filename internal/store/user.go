package store

import (
	"context"
	"errors"
	"fmt"

	"userhub/internal/database"
	"userhub/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUserNotFound is returned when no row matches the requested id or
	// email. Handlers map it to 404 uniformly.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an insert or update violates the unique
	// index on users.email.
	ErrEmailTaken = errors.New("email already taken")
)

const userColumns = "id, name, email, password, role, created_at, updated_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// UserUpdate holds the mutable fields of a partial update. Nil means "leave
// unchanged".
type UserUpdate struct {
	Name  *string
	Email *string
	Role  *model.Role
}

// Empty reports whether no field is set.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Role == nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func mapError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailTaken
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ListUsers returns every user in storage order. No pagination; acceptable at
// this scale.
func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.PasswordHash,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError("GetUserByEmail", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapError("CreateUser", err)
	}
	return u, nil
}

// UpdateUser applies the supplied fields to the user with the given id and
// refreshes updated_at. The existence check and the UPDATE are two separate
// statements; a target deleted in between surfaces as ErrUserNotFound from
// the second, which is fine.
func UpdateUser(ctx context.Context, db database.DB, userID int, fields UserUpdate) (*model.User, error) {
	if _, err := GetUserByID(ctx, db, userID); err != nil {
		return nil, err
	}

	b := psql.Update("users").Set("updated_at", sq.Expr("now()"))
	if fields.Name != nil {
		b = b.Set("name", *fields.Name)
	}
	if fields.Email != nil {
		b = b.Set("email", *fields.Email)
	}
	if fields.Role != nil {
		b = b.Set("role", *fields.Role)
	}
	query, args, err := b.
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("UpdateUser: %w", err)
	}

	u, err := scanUser(db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError("UpdateUser", err)
	}
	return u, nil
}

// DeleteUser removes the user permanently and returns the deleted record.
// Same read-before-write sequence as UpdateUser.
func DeleteUser(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	if _, err := GetUserByID(ctx, db, userID); err != nil {
		return nil, err
	}

	row := db.QueryRow(ctx,
		`DELETE FROM users WHERE id = $1 RETURNING `+userColumns,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError("DeleteUser", err)
	}
	return u, nil
}
