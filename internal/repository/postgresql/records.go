package postgresql

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opsboard/bulk_importer/internal/domain"
)

// RecordsRepository persists transformed records with insert-one semantics.
// The target table and column set come from the record itself, so all seven
// entity types share one code path.
type RecordsRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewRecordsRepository(pool *pgxpool.Pool) *RecordsRepository {
	return &RecordsRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *RecordsRepository) InsertRecord(ctx context.Context, rec domain.Record) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Insert(rec.Table()).
		Columns(rec.Columns()...).
		Values(rec.Values()...).
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
