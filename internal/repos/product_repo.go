package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"taketora/internal/domain"
	applog "taketora/internal/log"
)

// ProductRepo reads the product tables over SQL. Rows are scanned in unsafe
// mode so columns a table lacks, or has extra, never fail the query.
type ProductRepo struct {
	db  *sqlx.DB
	log *applog.Logger
}

func NewProductRepo(db *sqlx.DB, lg *applog.Logger) *ProductRepo {
	return &ProductRepo{db: db.Unsafe(), log: lg.With("repos.sql")}
}

func (r *ProductRepo) List(ctx context.Context, t Table, opts ListOptions) ([]domain.Product, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown table %q", t)
	}
	q := `SELECT * FROM ` + pq.QuoteIdentifier(string(t))
	args := []any{}
	if opts.Category != "" {
		q += ` WHERE category = ?`
		args = append(args, opts.Category)
	}
	if col := opts.orderColumn(); col != "" {
		dir := "ASC"
		if opts.Desc {
			dir = "DESC"
		}
		q += ` ORDER BY ` + col + ` ` + dir
	}
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	var rows []productRecord
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", t, err)
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toProduct(t, r.log))
	}
	return out, nil
}

func (r *ProductRepo) GetBySlug(ctx context.Context, t Table, slug string) (domain.Product, error) {
	if !t.Valid() {
		return domain.Product{}, fmt.Errorf("unknown table %q", t)
	}
	q := `SELECT * FROM ` + pq.QuoteIdentifier(string(t)) + ` WHERE slug = ? LIMIT 1`

	var rows []productRecord
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), slug); err != nil {
		return domain.Product{}, fmt.Errorf("get %s/%s: %w", t, slug, err)
	}
	if len(rows) == 0 {
		return domain.Product{}, ErrNotFound
	}
	return rows[0].toProduct(t, r.log), nil
}
