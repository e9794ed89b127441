package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	intconfig "charter/internal/config"
	intdb "charter/internal/db"
	"charter/internal/domain"
	"charter/internal/domain/models"
)

const customerColumns = `id, first_name, last_name, email, phone_no, country, message, created_at`

type CustomerRepo struct {
	DB intdb.DBTX
}

func (r CustomerRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r CustomerRepo) GetByID(ctx context.Context, id int64) (models.Customer, error) {
	var c models.Customer
	if err := r.db().GetContext(ctx, &c, `SELECT `+customerColumns+` FROM customers WHERE id=? LIMIT 1`, id); err != nil {
		return models.Customer{}, fmt.Errorf("get customer %d: %w", id, err)
	}
	return c, nil
}

func (r CustomerRepo) Insert(ctx context.Context, in models.CustomerInput) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO customers (first_name, last_name, email, phone_no, country, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
	`, in.FirstName, in.LastName, in.Email,
		intdb.NullIfEmpty(in.PhoneNo), intdb.NullIfEmpty(in.Country), intdb.NullIfEmpty(in.Message))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Upsert inserts the customer or, when the email already exists, overwrites
// name, phone and country (message only when given) and returns the existing id.
// Requires the unique email key.
func (r CustomerRepo) Upsert(ctx context.Context, in models.CustomerInput) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO customers (first_name, last_name, email, phone_no, country, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			id=LAST_INSERT_ID(id),
			first_name=VALUES(first_name),
			last_name=VALUES(last_name),
			phone_no=VALUES(phone_no),
			country=VALUES(country),
			message=COALESCE(VALUES(message), message)
	`, in.FirstName, in.LastName, in.Email,
		intdb.NullIfEmpty(in.PhoneNo), intdb.NullIfEmpty(in.Country), intdb.NullIfEmpty(in.Message))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CustomerRepo) filtered(f models.CustomerFilter) *goqu.SelectDataset {
	ds := mysqlDialect.From(goqu.T("customers")).Prepared(true)
	where := []exp.Expression{}
	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, likeAny(q, "first_name", "last_name", "email"))
	}
	if c := strings.TrimSpace(f.Country); c != "" {
		where = append(where, goqu.I("country").Eq(c))
	}
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	return ds
}

// Search lists customers for the admin screen, ordered by name.
func (r CustomerRepo) Search(ctx context.Context, f models.CustomerFilter, page domain.Pagination) ([]models.Customer, int, error) {
	page = page.Normalize()
	base := r.filtered(f)

	countSQL, countArgs, err := base.Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build customer count: %w", err)
	}
	var total int
	if err := r.db().GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, err
	}

	listSQL, args, err := base.
		Select("id", "first_name", "last_name", "email", "phone_no", "country", "message", "created_at").
		Order(goqu.I("first_name").Asc(), goqu.I("last_name").Asc(), goqu.I("id").Asc()).
		Limit(uint(page.PageSize)).
		Offset(uint(page.Offset())).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build customer search: %w", err)
	}
	out := []models.Customer{}
	if err := r.db().SelectContext(ctx, &out, listSQL, args...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
