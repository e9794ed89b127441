package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charter/internal/brevo"
	"charter/internal/domain"
	"charter/internal/domain/models"
)

const examplePayload = `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,` +
	`"pickup_date":"2024-06-01","pickup_time":"09:00:00","vehicle_id":1,"destination_id":5}`

type recordingMailer struct {
	sent []brevo.TemplateEmail
	err  error
}

func (m *recordingMailer) SendTemplate(_ context.Context, e brevo.TemplateEmail) error {
	m.sent = append(m.sent, e)
	return m.err
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, "mysql"), mock
}

func decodeBooking(t *testing.T, body string) models.BookingRequest {
	t.Helper()
	var req models.BookingRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func newBookingService(db *sqlx.DB, mailer brevo.Mailer) BookingService {
	cfg := domain.DefaultBookingConfig()
	cfg.AdminEmail = "admin@example.com"
	return BookingService{DB: db, Config: cfg, Mailer: mailer}
}

func expectVehicle(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery(`FROM vehicles WHERE id=\?`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "capacity", "image"}).
			AddRow(id, nil, "sedan", 4, nil))
}

func expectDestination(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery(`FROM destinations WHERE id=\?`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "distance", "duration", "latitude", "longitude", "description", "image"}).
			AddRow(id, "Airport", "25.50", 40, "1.350000", "103.980000", nil, nil))
}

func expectPrice(mock sqlmock.Sqlmock, vehicleID, destinationID int64, amount string) {
	mock.ExpectQuery(`FROM vehicle_destination_prices\s+WHERE vehicle_id=\? AND destination_id=\?`).
		WithArgs(vehicleID, destinationID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "destination_id", "price"}).
			AddRow(3, vehicleID, destinationID, amount))
}

func expectCustomerUpsert(mock sqlmock.Sqlmock, email string, id int64) {
	mock.ExpectExec(`INSERT INTO customers .*ON DUPLICATE KEY UPDATE`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), email, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(id, 1))
}

func TestCreateBookingSnapshotsPrice(t *testing.T) {
	db, mock := newMockDB(t)
	mailer := &recordingMailer{}

	expectVehicle(mock, 1)
	expectDestination(mock, 5)
	expectPrice(mock, 1, 5, "40.00")
	mock.ExpectBegin()
	expectCustomerUpsert(mock, "a@x.com", 10)
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(int64(10), int64(1), int64(5), int64(3), 40.0, int64(2), "", "",
			"2024-06-01", "09:00:00", "", false, "Todo").
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectCommit()

	res, err := newBookingService(db, mailer).Create(context.Background(), decodeBooking(t, examplePayload))
	require.NoError(t, err)
	assert.Equal(t, int64(77), res.BookingID)
	assert.Equal(t, int64(10), res.CustomerID)
	require.NotNil(t, res.Price)
	assert.Equal(t, 40.0, *res.Price)
	assert.Equal(t, "Todo", res.Status)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	assert.Equal(t, int64(2), sent.TemplateID)
	assert.Equal(t, "admin@example.com", sent.To[0].Email)
	assert.Equal(t, "Ann Lee", sent.Params["customer"])
	assert.Equal(t, "Ann Lee", sent.Params["user_name"])
	assert.Equal(t, "Airport", sent.Params["destination"])
	assert.Equal(t, "Sedan", sent.Params["vehicle"])
	assert.Equal(t, "2024-06-01", sent.Params["pickup_date"])
	assert.Equal(t, "09:00:00", sent.Params["pickup_time"])
	assert.Equal(t, 2, sent.Params["no_of_passengers"])
	assert.Equal(t, "40.00", sent.Params["price"])
}

func TestCreateBookingWithoutTripUsesNotSpecified(t *testing.T) {
	db, mock := newMockDB(t)
	mailer := &recordingMailer{}

	mock.ExpectBegin()
	expectCustomerUpsert(mock, "a@x.com", 11)
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(78, 1))
	mock.ExpectCommit()

	body := `{"first_name":"Ann","last_name":"Lee","email":"A@X.com ","no_of_passengers":"3",` +
		`"pickup_date":"2024-06-01","pickup_time":"09:00"}`
	res, err := newBookingService(db, mailer).Create(context.Background(), decodeBooking(t, body))
	require.NoError(t, err)
	assert.Nil(t, res.Price)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Not specified", mailer.sent[0].Params["destination"])
	assert.Equal(t, "Not specified", mailer.sent[0].Params["vehicle"])
	assert.Equal(t, "Not specified", mailer.sent[0].Params["price"])
	assert.Equal(t, "09:00:00", mailer.sent[0].Params["pickup_time"])
}

func TestCreateBookingMissingFieldsWriteNothing(t *testing.T) {
	cases := map[string]string{
		"first_name":       `{"last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"09:00"}`,
		"last_name":        `{"first_name":"Ann","email":"a@x.com","no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"09:00"}`,
		"email":            `{"first_name":"Ann","last_name":"Lee","email":"  ","no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"09:00"}`,
		"no_of_passengers": `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","pickup_date":"2024-06-01","pickup_time":"09:00"}`,
		"pickup_date":      `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_time":"09:00"}`,
		"pickup_time":      `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_date":"2024-06-01"}`,
	}
	for field, body := range cases {
		t.Run(field, func(t *testing.T) {
			db, mock := newMockDB(t)
			mailer := &recordingMailer{}

			_, err := newBookingService(db, mailer).Create(context.Background(), decodeBooking(t, body))
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, field, domain.FieldOf(err))
			assert.Equal(t, field+" is required", err.Error())
			assert.Empty(t, mailer.sent)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateBookingConfiguredRequiredFields(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newBookingService(db, nil)
	svc.Config.RequirePhone = true
	svc.Config.RequireTrip = true

	body := `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"09:00"}`
	_, err := svc.Create(context.Background(), decodeBooking(t, body))
	assert.Equal(t, "phone_no", domain.FieldOf(err))

	body = `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","phone_no":5551234,"no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"09:00"}`
	_, err = svc.Create(context.Background(), decodeBooking(t, body))
	assert.Equal(t, "vehicle_id", domain.FieldOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func bookingBody(t *testing.T, overrides map[string]any) models.BookingRequest {
	t.Helper()
	fields := map[string]any{
		"first_name": "Ann", "last_name": "Lee", "email": "a@x.com",
		"no_of_passengers": 2, "pickup_date": "2024-06-01", "pickup_time": "09:00",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	b, err := json.Marshal(fields)
	require.NoError(t, err)
	return decodeBooking(t, string(b))
}

func TestValidateRejectsOversizedFields(t *testing.T) {
	cases := map[string]any{
		"first_name":       strings.Repeat("a", 101),
		"last_name":        strings.Repeat("b", 101),
		"email":            strings.Repeat("c", 250) + "@x.com",
		"phone_no":         strings.Repeat("1", 21),
		"country":          strings.Repeat("d", 101),
		"message":          strings.Repeat("e", 10001),
		"pickup_location":  strings.Repeat("f", 201),
		"dropoff_location": strings.Repeat("g", 201),
		"additional_info":  strings.Repeat("h", 10001),
		"no_of_passengers": int64(9999999999),
	}
	for field, value := range cases {
		t.Run(field, func(t *testing.T) {
			db, mock := newMockDB(t)

			_, err := newBookingService(db, nil).Validate(context.Background(), bookingBody(t, map[string]any{field: value}))
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, field, domain.FieldOf(err))
			assert.Contains(t, err.Error(), "at most")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestValidateAcceptsFieldsAtTheLimit(t *testing.T) {
	db, mock := newMockDB(t)

	v, err := newBookingService(db, nil).Validate(context.Background(), bookingBody(t, map[string]any{
		"first_name":       strings.Repeat("é", 100),
		"phone_no":         strings.Repeat("9", 20),
		"pickup_location":  strings.Repeat("p", 200),
		"no_of_passengers": 2147483647,
	}))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 100), v.Customer.FirstName)
	assert.Equal(t, 2147483647, v.Booking.NoOfPassengers)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingMalformedDateAndTime(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newBookingService(db, nil)

	badDate := `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_date":"13/31/2024","pickup_time":"09:00:00"}`
	_, dateErr := svc.Create(context.Background(), decodeBooking(t, badDate))
	require.Error(t, dateErr)
	assert.True(t, domain.IsValidation(dateErr))
	assert.Equal(t, "pickup_date", domain.FieldOf(dateErr))

	badTime := `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"25:99"}`
	_, timeErr := svc.Create(context.Background(), decodeBooking(t, badTime))
	require.Error(t, timeErr)
	assert.True(t, domain.IsValidation(timeErr))
	assert.Equal(t, "pickup_time", domain.FieldOf(timeErr))

	assert.NotEqual(t, dateErr.Error(), timeErr.Error())

	impossible := `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_date":"2024-02-30","pickup_time":"09:00"}`
	_, err := svc.Create(context.Background(), decodeBooking(t, impossible))
	assert.Equal(t, "pickup_date", domain.FieldOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingWithoutPriceIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newBookingService(db, &recordingMailer{})

	for i := 0; i < 2; i++ {
		expectVehicle(mock, 1)
		expectDestination(mock, 5)
		mock.ExpectQuery(`FROM vehicle_destination_prices`).WithArgs(int64(1), int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "destination_id", "price"}))

		_, err := svc.Create(context.Background(), decodeBooking(t, examplePayload))
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))
		assert.Equal(t, "Price not available for this combination", err.Error())
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnknownDestination(t *testing.T) {
	db, mock := newMockDB(t)
	expectVehicle(mock, 1)
	mock.ExpectQuery(`FROM destinations WHERE id=\?`).WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	body := `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,` +
		`"pickup_date":"2024-06-01","pickup_time":"09:00:00","vehicle_id":1,"destination_id":999}`
	_, err := newBookingService(db, nil).Create(context.Background(), decodeBooking(t, body))
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "destination_id", domain.FieldOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUpsertKeepsOneCustomer(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newBookingService(db, nil)

	mock.ExpectBegin()
	expectCustomerUpsert(mock, "a@x.com", 10)
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO customers .*ON DUPLICATE KEY UPDATE\s+id=LAST_INSERT_ID\(id\)`).
		WithArgs("Ann", "Lee", "a@x.com", "222", nil, nil).
		WillReturnResult(sqlmock.NewResult(10, 2))
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	first := `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","phone_no":"111","no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"09:00"}`
	second := `{"first_name":"Ann","last_name":"Lee","email":"A@x.com","phone_no":"222","no_of_passengers":2,"pickup_date":"2024-06-02","pickup_time":"09:00"}`

	r1, err := svc.Create(context.Background(), decodeBooking(t, first))
	require.NoError(t, err)
	r2, err := svc.Create(context.Background(), decodeBooking(t, second))
	require.NoError(t, err)
	assert.Equal(t, r1.CustomerID, r2.CustomerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingInsertPolicyAddsRowPerBooking(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newBookingService(db, nil)
	svc.Config.CustomerPolicy = domain.CustomerPolicyInsert

	for i := int64(1); i <= 3; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO customers`).WillReturnResult(sqlmock.NewResult(i, 1))
		mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(100+i, 1))
		mock.ExpectCommit()
	}

	body := `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"09:00"}`
	seen := map[int64]bool{}
	for i := 0; i < 3; i++ {
		res, err := svc.Create(context.Background(), decodeBooking(t, body))
		require.NoError(t, err)
		seen[res.CustomerID] = true
	}
	assert.Len(t, seen, 3)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRetriesDeadlockVictimOnce(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO customers`).
		WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	expectCustomerUpsert(mock, "a@x.com", 42)
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	body := `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"09:00"}`
	res, err := newBookingService(db, nil).Create(context.Background(), decodeBooking(t, body))
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.CustomerID)
	assert.Equal(t, int64(9), res.BookingID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingGivesUpAfterSecondDeadlock(t *testing.T) {
	db, mock := newMockDB(t)
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO customers`).WillReturnError(deadlock)
		mock.ExpectRollback()
	}

	body := `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"09:00"}`
	_, err := newBookingService(db, nil).Create(context.Background(), decodeBooking(t, body))
	assert.True(t, domain.IsInternal(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRollsBackWhenBookingInsertFails(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	expectCustomerUpsert(mock, "a@x.com", 10)
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	body := `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"09:00"}`
	mailer := &recordingMailer{}
	_, err := newBookingService(db, mailer).Create(context.Background(), decodeBooking(t, body))
	require.Error(t, err)
	assert.True(t, domain.IsInternal(err))
	assert.Empty(t, mailer.sent)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingNotificationFailure(t *testing.T) {
	body := `{"first_name":"Ann","last_name":"Lee","email":"a@x.com","no_of_passengers":2,"pickup_date":"2024-06-01","pickup_time":"09:00"}`

	for _, strict := range []bool{false, true} {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		expectCustomerUpsert(mock, "a@x.com", 10)
		mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(5, 1))
		mock.ExpectCommit()

		svc := newBookingService(db, &recordingMailer{err: errors.New("brevo down")})
		svc.Config.NotifyStrict = strict
		res, err := svc.Create(context.Background(), decodeBooking(t, body))

		assert.Equal(t, int64(5), res.BookingID)
		if strict {
			require.Error(t, err)
			assert.True(t, domain.IsUpstream(err))
		} else {
			require.NoError(t, err)
		}
		require.NoError(t, mock.ExpectationsWereMet())
	}
}
