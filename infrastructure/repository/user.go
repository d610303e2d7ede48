package repository

import (
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vendalytics/store-analytics-api/infrastructure/database/postgres"
	"github.com/vendalytics/store-analytics-api/internal/domain"
)

const usersTable = "users"

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	UpdateUser(user *domain.User) error
	GetUserByEmail(email string) (*domain.User, error)
	GetUserByID(userID int) (*domain.User, error)
	ListUser() ([]*domain.User, error)
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	queryBuilder := squirrel.
		Insert(usersTable).
		Columns("name", "lastname", "email", "password_hash", "active", "role_id").
		Values(user.Name, user.Lastname, user.Email, user.PasswordHash, user.Active, user.RoleID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(usersSQL, usersArgs...).Scan(&user.ID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdateUser(user *domain.User) error {
	queryBuilder := squirrel.
		Update(usersTable).
		Set("active", user.Active).
		Where(squirrel.Eq{"id": user.ID})

	if user.Name != "" {
		queryBuilder = queryBuilder.Set("name", user.Name)
	}

	if user.Lastname != "" {
		queryBuilder = queryBuilder.Set("lastname", user.Lastname)
	}

	if user.Email != "" {
		queryBuilder = queryBuilder.Set("email", user.Email)
	}

	if user.PasswordHash != "" {
		queryBuilder = queryBuilder.Set("password_hash", user.PasswordHash)
	}

	if user.RoleID != 0 {
		queryBuilder = queryBuilder.Set("role_id", user.RoleID)
	}

	if user.Deleted {
		queryBuilder = queryBuilder.Set("deleted", true)
		queryBuilder = queryBuilder.Set("deleted_at", user.DeletedAt)
	}

	usersSQL, usersArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(usersSQL, usersArgs...)
	if err != nil {
		return err
	}

	return nil
}

func (r *userRepository) GetUserByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.conn.QueryRow("SELECT id, name, lastname, email, password_hash, active, role_id, created_at, updated_at FROM users WHERE email = $1", email).Scan(
		&user.ID,
		&user.Name,
		&user.Lastname,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetUserByID(userID int) (*domain.User, error) {
	var user domain.User
	err := r.conn.QueryRow("SELECT id, name, lastname, email, password_hash, active, role_id, created_at, updated_at FROM users WHERE deleted = false AND id = $1", userID).Scan(
		&user.ID,
		&user.Name,
		&user.Lastname,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) ListUser() ([]*domain.User, error) {
	queryBuilder := squirrel.
		Select("id", "name", "lastname", "email", "active", "role_id", "created_at", "updated_at").
		From(usersTable).
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(usersSQL, usersArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Lastname,
			&user.Email,
			&user.Active,
			&user.RoleID,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}

		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
