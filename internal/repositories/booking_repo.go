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
	"charter/internal/utils"
)

type BookingRepo struct {
	DB intdb.DBTX
}

func (r BookingRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert writes one booking row and returns its id.
func (r BookingRepo) Insert(ctx context.Context, b models.NewBooking) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO bookings (
			customer_id, vehicle_id, destination_id, vehicle_destination_price_id, price,
			no_of_passengers, pickup_location, dropoff_location, pickup_date, pickup_time,
			additional_info, is_return_trip, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		b.CustomerID, b.VehicleID, b.DestinationID, b.PriceID, b.Price,
		b.NoOfPassengers, b.PickupLocation, b.DropoffLocation, utils.FormatDate(b.PickupDate), b.PickupTime,
		b.AdditionalInfo, b.IsReturnTrip, b.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepo) detailDataset() *goqu.SelectDataset {
	return mysqlDialect.
		From(goqu.T("bookings").As("b")).
		Join(goqu.T("customers").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("b.customer_id")))).
		LeftJoin(goqu.T("vehicles").As("v"), goqu.On(goqu.I("v.id").Eq(goqu.I("b.vehicle_id")))).
		LeftJoin(goqu.T("destinations").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("b.destination_id")))).
		Prepared(true)
}

var bookingDetailColumns = []any{
	goqu.I("b.id"),
	goqu.I("b.customer_id"),
	goqu.I("b.vehicle_id"),
	goqu.I("b.destination_id"),
	goqu.I("b.vehicle_destination_price_id"),
	goqu.I("b.price"),
	goqu.I("b.no_of_passengers"),
	goqu.I("b.pickup_location"),
	goqu.I("b.dropoff_location"),
	goqu.L("DATE_FORMAT(b.pickup_date, '%Y-%m-%d')").As("pickup_date"),
	goqu.L("TIME_FORMAT(b.pickup_time, '%H:%i:%s')").As("pickup_time"),
	goqu.I("b.additional_info"),
	goqu.I("b.is_return_trip"),
	goqu.I("b.status"),
	goqu.I("b.created_at"),
	goqu.I("c.first_name"),
	goqu.I("c.last_name"),
	goqu.I("c.email"),
	goqu.I("c.phone_no"),
	goqu.I("c.country"),
	goqu.I("v.name").As("vehicle_name"),
	goqu.I("v.type").As("vehicle_type"),
	goqu.I("d.name").As("destination_name"),
}

// GetDetail loads one booking with its customer, vehicle and destination labels.
func (r BookingRepo) GetDetail(ctx context.Context, id int64) (models.BookingDetail, error) {
	query, args, err := r.detailDataset().
		Select(bookingDetailColumns...).
		Where(goqu.I("b.id").Eq(id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return models.BookingDetail{}, fmt.Errorf("build booking detail: %w", err)
	}
	var b models.BookingDetail
	if err := r.db().GetContext(ctx, &b, query, args...); err != nil {
		return models.BookingDetail{}, fmt.Errorf("get booking %d: %w", id, err)
	}
	return b, nil
}

func bookingWhere(f models.BookingFilter) []exp.Expression {
	where := []exp.Expression{}
	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, likeAny(q, "c.first_name", "c.last_name", "c.email", "c.phone_no"))
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, goqu.I("b.status").Eq(s))
	}
	if f.VehicleID > 0 {
		where = append(where, goqu.I("b.vehicle_id").Eq(f.VehicleID))
	}
	if f.DestinationID > 0 {
		where = append(where, goqu.I("b.destination_id").Eq(f.DestinationID))
	}
	if d := strings.TrimSpace(f.PickupDate); d != "" {
		where = append(where, goqu.I("b.pickup_date").Eq(d))
	}
	if f.IsReturnTrip != nil {
		where = append(where, goqu.I("b.is_return_trip").Eq(*f.IsReturnTrip))
	}
	return where
}

// Search backs the admin booking list, newest first.
func (r BookingRepo) Search(ctx context.Context, f models.BookingFilter, page domain.Pagination) ([]models.BookingDetail, int, error) {
	page = page.Normalize()
	base := r.detailDataset()
	if where := bookingWhere(f); len(where) > 0 {
		base = base.Where(where...)
	}

	countSQL, countArgs, err := base.Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build booking count: %w", err)
	}
	var total int
	if err := r.db().GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, err
	}

	listSQL, args, err := base.
		Select(bookingDetailColumns...).
		Order(goqu.I("b.created_at").Desc(), goqu.I("b.id").Desc()).
		Limit(uint(page.PageSize)).
		Offset(uint(page.Offset())).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build booking search: %w", err)
	}
	out := []models.BookingDetail{}
	if err := r.db().SelectContext(ctx, &out, listSQL, args...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetStatusForUpdate locks the booking row and returns its status.
func (r BookingRepo) GetStatusForUpdate(ctx context.Context, id int64) (string, error) {
	var status string
	if err := r.db().GetContext(ctx, &status, `SELECT status FROM bookings WHERE id=? FOR UPDATE`, id); err != nil {
		return "", err
	}
	return status, nil
}

func (r BookingRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db().ExecContext(ctx, `UPDATE bookings SET status=? WHERE id=?`, status, id)
	return err
}
