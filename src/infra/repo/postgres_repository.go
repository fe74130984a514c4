package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"resourcehub/src/core/domain"
	"resourcehub/src/core/ports"
	"resourcehub/src/infra/db"
)

var _ ports.ResourceRepository = (*PostgresRepository)(nil)

// resourceColumns is the projection shared by every query that returns a resource.
// unit_price is read as text so it round-trips through decimal.Decimal without loss.
const resourceColumns = `resource_id, name, description, quantity, unit_price::text, created_at, updated_at`

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS resources (
		resource_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name        TEXT        NOT NULL,
		description TEXT        NOT NULL DEFAULT '',
		quantity    INTEGER     NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		unit_price  NUMERIC     NOT NULL DEFAULT 0 CHECK (unit_price >= 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresRepository implements ResourceRepository using pgx.
type PostgresRepository struct {
	pg  *db.Postgres
	log *slog.Logger
}

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(pg *db.Postgres, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pg:  pg,
		log: log,
	}
}

// EnsureSchema creates the resources table when it does not exist yet.
// Identity columns never hand out a value twice, so deleted ids are not reused.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pg.Pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure resources table: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.pg.Health(ctx)
}

func scanResource(row pgx.Row) (*domain.Resource, error) {
	var (
		res   domain.Resource
		price string
	)
	if err := row.Scan(&res.ID, &res.Name, &res.Description, &res.Quantity, &price, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse unit_price %q: %w", price, err)
	}
	res.UnitPrice = d
	return &res, nil
}

func notFoundOr(err error, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewNotFoundError(id)
	}
	return err
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*domain.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources WHERE resource_id = $1`

	res, err := scanResource(r.pg.Pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, notFoundOr(err, id)
	}
	return res, nil
}

func (r *PostgresRepository) FindPage(ctx context.Context, page, pageSize int) ([]domain.Resource, int64, error) {
	const countQ = `SELECT COUNT(*) FROM resources`
	const pageQ = `
		SELECT ` + resourceColumns + `
		FROM resources
		ORDER BY resource_id ASC
		LIMIT $1 OFFSET $2
	`

	var (
		total int64
		items = []domain.Resource{}
	)
	// A repeatable-read snapshot keeps the count consistent with the page.
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	err := r.pg.InTx(ctx, opts, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countQ).Scan(&total); err != nil {
			return err
		}
		offset, ok := pageOffset(page, pageSize)
		if !ok || int64(offset) >= total {
			return nil
		}

		rows, err := tx.Query(ctx, pageQ, pageSize, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			res, err := scanResource(rows)
			if err != nil {
				return err
			}
			items = append(items, *res)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, res domain.Resource) (*domain.Resource, error) {
	const q = `
		INSERT INTO resources (name, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4::numeric)
		RETURNING ` + resourceColumns

	created, err := scanResource(r.pg.Pool.QueryRow(ctx, q, res.Name, res.Description, res.Quantity, res.UnitPrice.String()))
	if err != nil {
		return nil, err
	}
	r.log.Debug("resource inserted", "id", created.ID, "storage", "postgres")
	return created, nil
}

func (r *PostgresRepository) Replace(ctx context.Context, id int64, res domain.Resource) (*domain.Resource, error) {
	const q = `
		UPDATE resources
		SET name = $2, description = $3, quantity = $4, unit_price = $5::numeric, updated_at = now()
		WHERE resource_id = $1
		RETURNING ` + resourceColumns

	updated, err := scanResource(r.pg.Pool.QueryRow(ctx, q, id, res.Name, res.Description, res.Quantity, res.UnitPrice.String()))
	if err != nil {
		return nil, notFoundOr(err, id)
	}
	return updated, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, mutate ports.MutateFunc) (*domain.Resource, error) {
	const selectQ = `SELECT ` + resourceColumns + ` FROM resources WHERE resource_id = $1 FOR UPDATE`
	const updateQ = `
		UPDATE resources
		SET name = $2, description = $3, quantity = $4, unit_price = $5::numeric, updated_at = now()
		WHERE resource_id = $1
		RETURNING ` + resourceColumns

	var updated *domain.Resource
	err := r.pg.InTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		current, err := scanResource(tx.QueryRow(ctx, selectQ, id))
		if err != nil {
			return notFoundOr(err, id)
		}

		next, err := mutate(*current)
		if err != nil {
			return err
		}

		updated, err = scanResource(tx.QueryRow(ctx, updateQ, id, next.Name, next.Description, next.Quantity, next.UnitPrice.String()))
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM resources WHERE resource_id = $1`

	tag, err := r.pg.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(id)
	}
	r.log.Debug("resource deleted", "id", id, "storage", "postgres")
	return nil
}
