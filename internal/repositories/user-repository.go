package repositories

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
)

const (
	userTable  = "users"
	userFields = "id, name, email, password, role, created_at"
)

type UserRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	// Create inserts the user, or updates name, password and role when the
	// email is already registered.
	Create(ctx context.Context, u entities.User) (uint64, error)
}

type userRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &userRepository{storage: storage, logger: logger}
}

func (r *userRepository) findOne(ctx context.Context, where string, arg interface{}) (*entities.User, error) {
	query, args, err := psql.Select(userFields).From(userTable).Where(where, arg).ToSql()
	if err != nil {
		return nil, err
	}
	var u entities.User
	err = r.storage.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, storeError(err, "find user")
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) Create(ctx context.Context, u entities.User) (uint64, error) {
	query, args, err := psql.Insert(userTable).
		Columns("name", "email", "password", "role").
		Values(u.Name, strings.ToLower(strings.TrimSpace(u.Email)), u.Password, string(u.Role)).
		Suffix("ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, password = EXCLUDED.password, role = EXCLUDED.role RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, storeError(err, "create user")
	}
	return id, nil
}
