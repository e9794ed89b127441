package services

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	intconfig "charter/internal/config"
	intdb "charter/internal/db"
	"charter/internal/domain"
	"charter/internal/domain/models"
	"charter/internal/repositories"
	"charter/internal/utils"
)

// ContactService stores contact-us messages against a customer record.
type ContactService struct {
	DB        *sqlx.DB
	Config    domain.BookingConfig
	RequestID string
}

func (s ContactService) db() *sqlx.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ContactService) Submit(ctx context.Context, req models.ContactRequest) (int64, error) {
	in := models.CustomerInput{
		FirstName: utils.NormalizeSpace(req.FirstName.String()),
		LastName:  utils.NormalizeSpace(req.LastName.String()),
		Email:     utils.NormalizeEmail(req.Email.String()),
		PhoneNo:   req.PhoneNo.String(),
		Country:   req.Country.String(),
	}
	message := req.Message.String()

	fields := []struct{ name, value string }{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"email", in.Email},
		{"phone_no", in.PhoneNo},
		{"country", in.Country},
		{"message", message},
	}
	for _, f := range fields {
		if f.value == "" {
			return 0, domain.Required(f.name)
		}
	}
	limits := customerLimits(in.FirstName, in.LastName, in.Email, in.PhoneNo, in.Country)
	limits = append(limits, fieldLimit{"message", message, maxTextLen})
	if err := checkLengths(limits...); err != nil {
		return 0, err
	}
	if !utils.LooksLikeEmail(in.Email) {
		return 0, domain.ValidationError{Field: "email", Msg: "email is not a valid address"}
	}

	var messageID int64
	err := intdb.WithTxRetry(ctx, s.db(), txAttempts, func(tx *sqlx.Tx) error {
		customerID, err := saveCustomer(ctx, tx, in, s.Config.UpsertCustomers())
		if err != nil {
			return fmt.Errorf("save customer: %w", err)
		}
		messageID, err = repositories.MessageRepo{DB: tx}.Insert(ctx, customerID, message)
		return err
	})
	if err != nil {
		return 0, domain.InternalError{Msg: "Error creating contact message", Err: err}
	}
	utils.LogEvent(s.RequestID, "contact", "submit", fmt.Sprintf("message_id=%d", messageID))
	return messageID, nil
}
