package repositories

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"charter/internal/domain"
	"charter/internal/domain/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "mysql"), mock
}

func TestBookingDetailSelectsSnapshotPrice(t *testing.T) {
	query, args, err := BookingRepo{}.detailDataset().
		Select(bookingDetailColumns...).
		Where(goqu.I("b.id").Eq(int64(9))).
		ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(query, "`b`.`price`") {
		t.Fatalf("detail query must read the booking's own price, got %s", query)
	}
	if strings.Contains(query, "vehicle_destination_prices") {
		t.Fatalf("detail query must not join the live price table, got %s", query)
	}
	if !strings.Contains(query, "LEFT JOIN `vehicles`") || !strings.Contains(query, "LEFT JOIN `destinations`") {
		t.Fatalf("vehicle and destination must be optional joins, got %s", query)
	}
	if len(args) != 1 || args[0] != int64(9) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestBookingWhereSkipsEmptyFilters(t *testing.T) {
	if got := bookingWhere(models.BookingFilter{Query: "  ", Status: ""}); len(got) != 0 {
		t.Fatalf("expected no conditions, got %d", len(got))
	}
	ret := true
	got := bookingWhere(models.BookingFilter{
		Query:         "ana",
		Status:        "Todo",
		VehicleID:     2,
		DestinationID: 3,
		PickupDate:    "2025-01-10",
		IsReturnTrip:  &ret,
	})
	if len(got) != 6 {
		t.Fatalf("expected 6 conditions, got %d", len(got))
	}
}

func TestBookingInsertWritesPriceSnapshot(t *testing.T) {
	db, mock := newMock(t)
	vehicleID, destinationID, priceID, price := int64(1), int64(2), int64(5), 350.0

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(int64(7), vehicleID, destinationID, priceID, price,
			3, "Airport", "Hotel", "2025-01-10", "08:30:00",
			"", false, "Todo").
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := BookingRepo{DB: db}.Insert(context.Background(), models.NewBooking{
		CustomerID:      7,
		VehicleID:       &vehicleID,
		DestinationID:   &destinationID,
		PriceID:         &priceID,
		Price:           &price,
		NoOfPassengers:  3,
		PickupLocation:  "Airport",
		DropoffLocation: "Hotel",
		PickupDate:      time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local),
		PickupTime:      "08:30:00",
		Status:          "Todo",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestBookingSearchCountsThenPages(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("Confirm").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("ORDER BY `b`.`created_at` DESC, `b`.`id` DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	out, total, err := BookingRepo{DB: db}.Search(context.Background(),
		models.BookingFilter{Status: "Confirm"}, domain.Pagination{Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 0 || len(out) != 0 {
		t.Fatalf("expected empty page, got total=%d len=%d", total, len(out))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestBookingStatusLockAndUpdate(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM bookings WHERE id=? FOR UPDATE")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Todo"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status=? WHERE id=?")).
		WithArgs("Confirm", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepo{DB: db}
	status, err := repo.GetStatusForUpdate(context.Background(), 4)
	if err != nil || status != "Todo" {
		t.Fatalf("got %q, %v", status, err)
	}
	if err := repo.UpdateStatus(context.Background(), 4, "Confirm"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
