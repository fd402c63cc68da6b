package postgresql

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opsboard/bulk_importer/internal/domain"
)

const TableOrganizationMembers = "organization_members"

type MembershipsRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewMembershipsRepository(pool *pgxpool.Pool) *MembershipsRepository {
	return &MembershipsRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// AddMember joins a user to an organization. Re-imports of the same user
// must not fail the row, hence the conflict no-op.
func (r *MembershipsRepository) AddMember(ctx context.Context, m *domain.Membership) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Insert(TableOrganizationMembers).
		Columns(
			"organization_id",
			"user_id",
			"role",
		).
		Values(
			m.OrganizationID,
			m.UserID,
			m.Role,
		).
		Suffix("ON CONFLICT (organization_id, user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	_, err = db.Exec(ctx, sql, args...)
	if err != nil {
		return executeQueryError(err)
	}

	return nil
}
