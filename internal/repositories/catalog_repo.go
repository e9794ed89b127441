package repositories

import (
	"context"
	"fmt"
	"strings"

	intconfig "charter/internal/config"
	intdb "charter/internal/db"
	"charter/internal/domain/models"
)

const destinationColumns = `id, name, distance, duration, latitude, longitude, description, image`

type DestinationRepo struct {
	DB intdb.DBTX
}

func (r DestinationRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DestinationRepo) List(ctx context.Context) ([]models.Destination, error) {
	out := []models.Destination{}
	err := r.db().SelectContext(ctx, &out, `SELECT `+destinationColumns+` FROM destinations ORDER BY name, id`)
	return out, err
}

// GetByID returns sql.ErrNoRows (wrapped) when the destination is absent.
func (r DestinationRepo) GetByID(ctx context.Context, id int64) (models.Destination, error) {
	var d models.Destination
	err := r.db().GetContext(ctx, &d, `SELECT `+destinationColumns+` FROM destinations WHERE id=? LIMIT 1`, id)
	if err != nil {
		return models.Destination{}, fmt.Errorf("get destination %d: %w", id, err)
	}
	return d, nil
}

func (r DestinationRepo) Create(ctx context.Context, in models.DestinationInput) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO destinations (name, distance, duration, latitude, longitude, description, image)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, strings.TrimSpace(in.Name), in.Distance, in.Duration, in.Latitude, in.Longitude,
		intdb.NullIfEmpty(strings.TrimSpace(in.Description)), intdb.NullIfEmpty(strings.TrimSpace(in.Image)))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update reports whether a row matched.
func (r DestinationRepo) Update(ctx context.Context, id int64, in models.DestinationInput) (bool, error) {
	res, err := r.db().ExecContext(ctx, `
		UPDATE destinations
		SET name=?, distance=?, duration=?, latitude=?, longitude=?, description=?, image=?
		WHERE id=?
	`, strings.TrimSpace(in.Name), in.Distance, in.Duration, in.Latitude, in.Longitude,
		intdb.NullIfEmpty(strings.TrimSpace(in.Description)), intdb.NullIfEmpty(strings.TrimSpace(in.Image)), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return true, nil
	}
	return rowExists(ctx, r.db(), "destinations", id)
}

const vehicleColumns = `id, name, type, capacity, image`

type VehicleRepo struct {
	DB intdb.DBTX
}

func (r VehicleRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r VehicleRepo) List(ctx context.Context) ([]models.Vehicle, error) {
	out := []models.Vehicle{}
	err := r.db().SelectContext(ctx, &out, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id`)
	return out, err
}

func (r VehicleRepo) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	var v models.Vehicle
	err := r.db().GetContext(ctx, &v, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=? LIMIT 1`, id)
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	return v, nil
}

// ListForDestination returns the vehicles that have a price for destinationID.
func (r VehicleRepo) ListForDestination(ctx context.Context, destinationID int64) ([]models.VehicleOffer, error) {
	out := []models.VehicleOffer{}
	err := r.db().SelectContext(ctx, &out, `
		SELECT v.id, v.name, v.type, v.capacity, v.image, p.price,
		       d.id AS destination_id, d.name AS destination_name
		FROM vehicle_destination_prices p
		JOIN vehicles v ON v.id = p.vehicle_id
		JOIN destinations d ON d.id = p.destination_id
		WHERE p.destination_id = ?
		ORDER BY p.price, v.id
	`, destinationID)
	return out, err
}

func (r VehicleRepo) Create(ctx context.Context, in models.VehicleInput) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO vehicles (name, type, capacity, image) VALUES (?, ?, ?, ?)
	`, intdb.NullIfEmpty(strings.TrimSpace(in.Name)), intdb.NullIfEmpty(strings.TrimSpace(in.Type)),
		in.Capacity, intdb.NullIfEmpty(strings.TrimSpace(in.Image)))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepo) Update(ctx context.Context, id int64, in models.VehicleInput) (bool, error) {
	res, err := r.db().ExecContext(ctx, `
		UPDATE vehicles SET name=?, type=?, capacity=?, image=? WHERE id=?
	`, intdb.NullIfEmpty(strings.TrimSpace(in.Name)), intdb.NullIfEmpty(strings.TrimSpace(in.Type)),
		in.Capacity, intdb.NullIfEmpty(strings.TrimSpace(in.Image)), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return true, nil
	}
	return rowExists(ctx, r.db(), "vehicles", id)
}

// rowExists disambiguates "no row" from "no change" after an UPDATE.
func rowExists(ctx context.Context, q intdb.DBTX, table string, id int64) (bool, error) {
	var n int
	if err := q.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table+` WHERE id=?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}
