package store

import (
	"context"
	"fmt"

	"vitrine/internal/utils"
	"vitrine/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const adminTableName = "vitrine.admin_users"

var adminColumns = utils.StructTagValues(types.AdminUser{})

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// AdminByUsername retrieves the admin account for a login attempt.
func (r *AdminRepository) AdminByUsername(ctx context.Context, username string) (*types.AdminUser, error) {

	query, args, err := psql().Select(adminColumns...).From(adminTableName).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate admin user query: %w", err)
	}

	var admin = new(types.AdminUser)
	err = pgxscan.Get(ctx, r.pool, admin, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrAdminNotFound
	}

	return admin, nil
}

// CreateAdmin inserts an admin account. Used by the seed command.
func (r *AdminRepository) CreateAdmin(ctx context.Context, admin *types.AdminUser) error {

	query, args, err := psql().Insert(adminTableName).
		Columns("username", "password_hash").
		Values(admin.Username, admin.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert admin query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&admin.ID, &admin.CreatedAt)

	return utils.ErrorWrapOrNil(err, "failed to create admin user")
}
