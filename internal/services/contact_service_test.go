package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charter/internal/domain"
	"charter/internal/domain/models"
)

const contactPayload = `{"first_name":"Ann","last_name":"Lee","email":"Ann@X.com","phone_no":"+62 811",` +
	`"country":"Indonesia","message":"Do you cover Bromo?"}`

func decodeContact(t *testing.T, body string) models.ContactRequest {
	t.Helper()
	var req models.ContactRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestContactSubmitStoresMessage(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	expectCustomerUpsert(mock, "ann@x.com", 4)
	mock.ExpectExec(`INSERT INTO messages`).WithArgs(int64(4), "Do you cover Bromo?").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	svc := ContactService{DB: db, Config: domain.DefaultBookingConfig()}
	id, err := svc.Submit(context.Background(), decodeContact(t, contactPayload))
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactSubmitRequiresEveryField(t *testing.T) {
	db, mock := newMockDB(t)
	svc := ContactService{DB: db, Config: domain.DefaultBookingConfig()}

	_, err := svc.Submit(context.Background(), decodeContact(t,
		`{"first_name":"Ann","last_name":"Lee","email":"a@x.com","phone_no":"1","message":"hi"}`))
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "country", domain.FieldOf(err))

	_, err = svc.Submit(context.Background(), decodeContact(t,
		`{"first_name":"Ann","last_name":"Lee","email":"nope","phone_no":"1","country":"ID","message":"hi"}`))
	assert.Equal(t, "email", domain.FieldOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactSubmitRejectsOversizedPhone(t *testing.T) {
	db, mock := newMockDB(t)
	svc := ContactService{DB: db, Config: domain.DefaultBookingConfig()}

	_, err := svc.Submit(context.Background(), decodeContact(t,
		`{"first_name":"Ann","last_name":"Lee","email":"a@x.com","phone_no":"123456789012345678901","country":"ID","message":"hi"}`))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "phone_no", domain.FieldOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactSubmitRollsBackOnMessageFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	expectCustomerUpsert(mock, "ann@x.com", 4)
	mock.ExpectExec(`INSERT INTO messages`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	svc := ContactService{DB: db, Config: domain.DefaultBookingConfig()}
	_, err := svc.Submit(context.Background(), decodeContact(t, contactPayload))
	assert.True(t, domain.IsInternal(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
