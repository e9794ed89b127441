package repositories

import (
	"context"

	intconfig "charter/internal/config"
	intdb "charter/internal/db"
	"charter/internal/domain/models"
)

const newsletterColumns = `id, email, token, verified, verified_at, created_at`

type NewsletterRepo struct {
	DB intdb.DBTX
}

func (r NewsletterRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r NewsletterRepo) GetByEmail(ctx context.Context, email string) (models.Newsletter, error) {
	var n models.Newsletter
	err := r.db().GetContext(ctx, &n, `SELECT `+newsletterColumns+` FROM newsletters WHERE email=? LIMIT 1`, email)
	return n, err
}

func (r NewsletterRepo) GetByToken(ctx context.Context, token string) (models.Newsletter, error) {
	var n models.Newsletter
	err := r.db().GetContext(ctx, &n, `SELECT `+newsletterColumns+` FROM newsletters WHERE token=? LIMIT 1`, token)
	return n, err
}

func (r NewsletterRepo) Insert(ctx context.Context, email, token string) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO newsletters (email, token, verified, created_at) VALUES (?, ?, 0, NOW())
	`, email, token)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RotateToken replaces the verification token of a still-unverified subscriber.
func (r NewsletterRepo) RotateToken(ctx context.Context, id int64, token string) error {
	_, err := r.db().ExecContext(ctx, `UPDATE newsletters SET token=? WHERE id=? AND verified=0`, token, id)
	return err
}

func (r NewsletterRepo) MarkVerified(ctx context.Context, id int64) error {
	_, err := r.db().ExecContext(ctx, `UPDATE newsletters SET verified=1, verified_at=NOW() WHERE id=?`, id)
	return err
}

func (r NewsletterRepo) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM newsletters WHERE email=?`, email)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r NewsletterRepo) ListVerified(ctx context.Context) ([]models.Newsletter, error) {
	out := []models.Newsletter{}
	err := r.db().SelectContext(ctx, &out, `SELECT `+newsletterColumns+` FROM newsletters WHERE verified=1 ORDER BY id`)
	return out, err
}
