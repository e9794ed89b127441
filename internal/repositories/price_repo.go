package repositories

import (
	"context"
	"fmt"

	intconfig "charter/internal/config"
	intdb "charter/internal/db"
	"charter/internal/domain/models"
)

const priceListingSelect = `
	SELECT p.id, p.vehicle_id, p.destination_id, p.price,
	       v.name AS vehicle_name, v.type AS vehicle_type, d.name AS destination_name
	FROM vehicle_destination_prices p
	JOIN vehicles v ON v.id = p.vehicle_id
	JOIN destinations d ON d.id = p.destination_id`

type PriceRepo struct {
	DB intdb.DBTX
}

func (r PriceRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// FindByPair is an equality lookup on the (vehicle_id, destination_id) unique key.
func (r PriceRepo) FindByPair(ctx context.Context, vehicleID, destinationID int64) (models.Price, error) {
	var p models.Price
	err := r.db().GetContext(ctx, &p, `
		SELECT id, vehicle_id, destination_id, price
		FROM vehicle_destination_prices
		WHERE vehicle_id=? AND destination_id=?
		LIMIT 1
	`, vehicleID, destinationID)
	if err != nil {
		return models.Price{}, fmt.Errorf("price for vehicle %d destination %d: %w", vehicleID, destinationID, err)
	}
	return p, nil
}

func (r PriceRepo) GetByID(ctx context.Context, id int64) (models.PriceListing, error) {
	var p models.PriceListing
	if err := r.db().GetContext(ctx, &p, priceListingSelect+` WHERE p.id=? LIMIT 1`, id); err != nil {
		return models.PriceListing{}, fmt.Errorf("get price %d: %w", id, err)
	}
	return p, nil
}

// List filters by vehicle and/or destination when the ids are non-zero.
func (r PriceRepo) List(ctx context.Context, vehicleID, destinationID int64) ([]models.PriceListing, error) {
	query := priceListingSelect + ` WHERE 1=1`
	args := []any{}
	if vehicleID > 0 {
		query += ` AND p.vehicle_id=?`
		args = append(args, vehicleID)
	}
	if destinationID > 0 {
		query += ` AND p.destination_id=?`
		args = append(args, destinationID)
	}
	query += ` ORDER BY p.id`

	out := []models.PriceListing{}
	err := r.db().SelectContext(ctx, &out, query, args...)
	return out, err
}

// Upsert sets the price for a pair, keeping the row id stable.
func (r PriceRepo) Upsert(ctx context.Context, in models.PriceInput) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO vehicle_destination_prices (vehicle_id, destination_id, price)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE id=LAST_INSERT_ID(id), price=VALUES(price)
	`, in.VehicleID, in.DestinationID, in.Price)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PriceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM vehicle_destination_prices WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
