package repositories

import (
	"context"
	"strings"

	intconfig "charter/internal/config"
	intdb "charter/internal/db"
	"charter/internal/domain"
	"charter/internal/domain/models"
)

type MessageRepo struct {
	DB intdb.DBTX
}

func (r MessageRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r MessageRepo) Insert(ctx context.Context, customerID int64, message string) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO messages (customer_id, message, created_at) VALUES (?, ?, NOW())
	`, customerID, message)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r MessageRepo) List(ctx context.Context, page domain.Pagination) ([]models.MessageListing, error) {
	page = page.Normalize()
	out := []models.MessageListing{}
	err := r.db().SelectContext(ctx, &out, `
		SELECT m.id, m.customer_id, m.message, m.created_at, c.first_name, c.last_name, c.email
		FROM messages m
		JOIN customers c ON c.id = m.customer_id
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT ? OFFSET ?
	`, page.PageSize, page.Offset())
	return out, err
}

type TestimonialRepo struct {
	DB intdb.DBTX
}

func (r TestimonialRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TestimonialRepo) List(ctx context.Context) ([]models.Testimonial, error) {
	out := []models.Testimonial{}
	err := r.db().SelectContext(ctx, &out, `
		SELECT id, customer_name, country, profile_icon, review, created_at
		FROM testimonials
		ORDER BY created_at DESC, id DESC
	`)
	return out, err
}

func (r TestimonialRepo) Create(ctx context.Context, t models.Testimonial) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO testimonials (customer_name, country, profile_icon, review, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`, strings.TrimSpace(t.CustomerName), strings.TrimSpace(t.Country), t.ProfileIcon, strings.TrimSpace(t.Review))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
