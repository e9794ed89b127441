package repositories

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"charter/internal/domain/models"
)

func TestCustomerUpsertReturnsExistingID(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE id=LAST_INSERT_ID(id)")).
		WithArgs("Ana", "Lee", "ana@x.com", "+1 555", nil, nil).
		WillReturnResult(sqlmock.NewResult(3, 2))

	id, err := CustomerRepo{DB: db}.Upsert(context.Background(), models.CustomerInput{
		FirstName: "Ana", LastName: "Lee", Email: "ana@x.com", PhoneNo: "+1 555",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if id != 3 {
		t.Fatalf("expected existing id 3, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCustomerUpsertKeepsMessageWhenBlank(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("message=COALESCE(VALUES(message), message)")).
		WithArgs("Ana", "Lee", "ana@x.com", nil, "ID", nil).
		WillReturnResult(sqlmock.NewResult(3, 1))

	_, err := CustomerRepo{DB: db}.Upsert(context.Background(), models.CustomerInput{
		FirstName: "Ana", LastName: "Lee", Email: "ana@x.com", Country: "ID",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCustomerFilteredBuildsLikeClause(t *testing.T) {
	query, args, err := CustomerRepo{}.filtered(models.CustomerFilter{Query: "ana", Country: "ID"}).
		Select("id").ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, frag := range []string{"(`first_name` LIKE ?)", "(`email` LIKE ?)", "(`country` = ?)", " OR ", " AND "} {
		if !strings.Contains(query, frag) {
			t.Fatalf("expected %q in %s", frag, query)
		}
	}
	if strings.Contains(query, "BINARY") {
		t.Fatalf("search must be case-insensitive, got %s", query)
	}
	if len(args) != 4 || args[0] != "%ana%" || args[3] != "ID" {
		t.Fatalf("unexpected args %v", args)
	}
}
