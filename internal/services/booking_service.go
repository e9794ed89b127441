package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"charter/internal/brevo"
	intconfig "charter/internal/config"
	intdb "charter/internal/db"
	"charter/internal/domain"
	"charter/internal/domain/models"
	"charter/internal/repositories"
	"charter/internal/utils"
)

const (
	notSpecified = "Not specified"
	txAttempts   = 2
)

type BookingService struct {
	DB            *sqlx.DB
	Config        domain.BookingConfig
	Mailer        brevo.Mailer
	NotifyTimeout time.Duration
	RequestID     string
}

// ValidatedBooking is a booking request that passed every check and may be written.
type ValidatedBooking struct {
	Customer    models.CustomerInput
	Vehicle     *models.Vehicle
	Destination *models.Destination
	Price       *models.Price
	Booking     models.NewBooking
}

type BookingResult struct {
	BookingID  int64    `json:"booking_id"`
	CustomerID int64    `json:"customer_id"`
	Price      *float64 `json:"price"`
	Status     string   `json:"status"`
}

func (s BookingService) db() *sqlx.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) mailer() brevo.Mailer {
	if s.Mailer != nil {
		return s.Mailer
	}
	return brevo.DisabledMailer{}
}

func (s BookingService) reader() intdb.DBTX {
	if db := s.db(); db != nil {
		return db
	}
	return nil
}

// ResolvePrice returns the price row for a vehicle/destination pair.
func (s BookingService) ResolvePrice(ctx context.Context, vehicleID, destinationID int64) (models.Price, error) {
	p, err := repositories.PriceRepo{DB: s.reader()}.FindByPair(ctx, vehicleID, destinationID)
	if err != nil {
		if intdb.IsNoRows(err) {
			return models.Price{}, domain.ConflictError{Resource: "price", Msg: "Price not available for this combination", Err: err}
		}
		return models.Price{}, domain.InternalError{Msg: "failed to resolve price", Err: err}
	}
	return p, nil
}

// Validate checks the request in a fixed order and performs only reads.
func (s BookingService) Validate(ctx context.Context, req models.BookingRequest) (ValidatedBooking, error) {
	cfg := s.Config
	var out ValidatedBooking

	customer := models.CustomerInput{
		FirstName: utils.NormalizeSpace(req.FirstName.String()),
		LastName:  utils.NormalizeSpace(req.LastName.String()),
		Email:     utils.NormalizeEmail(req.Email.String()),
		PhoneNo:   req.PhoneNo.String(),
		Country:   req.Country.String(),
		Message:   req.Message.String(),
	}
	required := []struct {
		field string
		value string
		need  bool
	}{
		{"first_name", customer.FirstName, true},
		{"last_name", customer.LastName, true},
		{"email", customer.Email, true},
		{"phone_no", customer.PhoneNo, cfg.RequirePhone},
		{"country", customer.Country, cfg.RequireCountry},
	}
	for _, r := range required {
		if r.need && r.value == "" {
			return out, domain.Required(r.field)
		}
	}
	limits := customerLimits(customer.FirstName, customer.LastName, customer.Email, customer.PhoneNo, customer.Country)
	limits = append(limits, fieldLimit{"message", customer.Message, maxTextLen})
	if err := checkLengths(limits...); err != nil {
		return out, err
	}
	if !utils.LooksLikeEmail(customer.Email) {
		return out, domain.ValidationError{Field: "email", Msg: "email is not a valid address"}
	}

	if !req.NoOfPassengers.Present || req.NoOfPassengers.Value == 0 && !req.NoOfPassengers.Invalid {
		return out, domain.Required("no_of_passengers")
	}
	if req.NoOfPassengers.Invalid || req.NoOfPassengers.Value < 0 {
		return out, domain.ValidationError{Field: "no_of_passengers", Msg: "no_of_passengers must be a positive integer"}
	}
	if req.NoOfPassengers.Value > maxPassengers {
		return out, domain.ValidationError{
			Field: "no_of_passengers",
			Msg:   fmt.Sprintf("no_of_passengers must be at most %d", maxPassengers),
		}
	}
	if req.PickupDate.String() == "" {
		return out, domain.Required("pickup_date")
	}
	if req.PickupTime.String() == "" {
		return out, domain.Required("pickup_time")
	}
	if err := checkLengths(
		fieldLimit{"pickup_location", req.PickupLocation.String(), maxLocationLen},
		fieldLimit{"dropoff_location", req.DropoffLocation.String(), maxLocationLen},
		fieldLimit{"additional_info", req.AdditionalInfo.String(), maxTextLen},
	); err != nil {
		return out, err
	}

	if cfg.RequireTrip {
		if !req.VehicleID.Present {
			return out, domain.Required("vehicle_id")
		}
		if !req.DestinationID.Present {
			return out, domain.Required("destination_id")
		}
	}

	q := s.reader()
	if req.VehicleID.Present {
		if req.VehicleID.Invalid || req.VehicleID.Value <= 0 {
			return out, domain.ValidationError{Field: "vehicle_id", Msg: "Invalid vehicle_id"}
		}
		v, err := repositories.VehicleRepo{DB: q}.GetByID(ctx, req.VehicleID.Value)
		if err != nil {
			return out, lookupError("vehicle", "vehicle_id", err)
		}
		out.Vehicle = &v
	}
	if req.DestinationID.Present {
		if req.DestinationID.Invalid || req.DestinationID.Value <= 0 {
			return out, domain.ValidationError{Field: "destination_id", Msg: "Invalid destination_id"}
		}
		d, err := repositories.DestinationRepo{DB: q}.GetByID(ctx, req.DestinationID.Value)
		if err != nil {
			return out, lookupError("destination", "destination_id", err)
		}
		out.Destination = &d
	}
	if out.Vehicle != nil && out.Destination != nil {
		p, err := s.ResolvePrice(ctx, out.Vehicle.ID, out.Destination.ID)
		if err != nil {
			return out, err
		}
		out.Price = &p
	}

	pickupDate, err := utils.ParseDate(req.PickupDate.String())
	if err != nil {
		return out, domain.ValidationError{
			Field: "pickup_date",
			Msg:   "Invalid pickup_date format. Use ISO format (YYYY-MM-DD)",
			Err:   err,
		}
	}
	pickupTime, err := utils.ParseClock(req.PickupTime.String())
	if err != nil {
		return out, domain.ValidationError{
			Field: "pickup_time",
			Msg:   "Invalid pickup_time format. Use ISO format (HH:MM:SS)",
			Err:   err,
		}
	}

	out.Customer = customer
	out.Booking = models.NewBooking{
		NoOfPassengers:  int(req.NoOfPassengers.Value),
		PickupLocation:  req.PickupLocation.String(),
		DropoffLocation: req.DropoffLocation.String(),
		PickupDate:      pickupDate,
		PickupTime:      pickupTime,
		AdditionalInfo:  req.AdditionalInfo.String(),
		IsReturnTrip:    bool(req.IsReturnTrip),
		Status:          cfg.Workflow.Initial(),
	}
	if out.Vehicle != nil {
		out.Booking.VehicleID = &out.Vehicle.ID
	}
	if out.Destination != nil {
		out.Booking.DestinationID = &out.Destination.ID
	}
	if out.Price != nil {
		id, amount := out.Price.ID, out.Price.Price
		out.Booking.PriceID = &id
		out.Booking.Price = &amount
	}
	return out, nil
}

// Create validates, writes customer and booking in one transaction, then notifies the admin.
// With NotifyStrict a failed notification returns the committed result together with an UpstreamError.
func (s BookingService) Create(ctx context.Context, req models.BookingRequest) (BookingResult, error) {
	v, err := s.Validate(ctx, req)
	if err != nil {
		return BookingResult{}, err
	}

	var res BookingResult
	err = intdb.WithTxRetry(ctx, s.db(), txAttempts, func(tx *sqlx.Tx) error {
		customerID, err := saveCustomer(ctx, tx, v.Customer, s.Config.UpsertCustomers())
		if err != nil {
			return fmt.Errorf("save customer: %w", err)
		}
		b := v.Booking
		b.CustomerID = customerID
		bookingID, err := repositories.BookingRepo{DB: tx}.Insert(ctx, b)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		res = BookingResult{BookingID: bookingID, CustomerID: customerID, Price: b.Price, Status: b.Status}
		return nil
	})
	if err != nil {
		return BookingResult{}, domain.InternalError{Msg: "Error creating booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d customer_id=%d price=%s", res.BookingID, res.CustomerID, utils.FormatMoneyOr(res.Price, "-")))

	if err := s.notify(ctx, v); err != nil {
		utils.LogWarn(s.RequestID, "booking", "notify_admin", err)
		if s.Config.NotifyStrict {
			return res, domain.UpstreamError{Service: "brevo", Msg: "Booking saved but admin notification failed", Err: err}
		}
	}
	return res, nil
}

// NotificationParams is the flat parameter map of the new-booking template.
func NotificationParams(v ValidatedBooking) map[string]any {
	destination, vehicle, price := notSpecified, notSpecified, notSpecified
	if v.Destination != nil {
		destination = v.Destination.Name
	}
	if v.Vehicle != nil {
		vehicle = utils.Safe(v.Vehicle.Label(), notSpecified)
	}
	if v.Booking.Price != nil {
		price = utils.FormatMoney(*v.Booking.Price)
	}
	name := v.Customer.FullName()
	return map[string]any{
		"user_name":        name,
		"customer":         name,
		"destination":      destination,
		"vehicle":          vehicle,
		"pickup_date":      utils.FormatDate(v.Booking.PickupDate),
		"pickup_time":      v.Booking.PickupTime,
		"no_of_passengers": v.Booking.NoOfPassengers,
		"price":            price,
	}
}

func (s BookingService) notify(ctx context.Context, v ValidatedBooking) error {
	to := strings.TrimSpace(s.Config.AdminEmail)
	if to == "" {
		utils.LogEvent(s.RequestID, "booking", "notify_admin", "admin email not configured, skipping")
		return nil
	}
	timeout := s.NotifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.mailer().SendTemplate(ctx, brevo.TemplateEmail{
		To:         []brevo.Recipient{{Email: to, Name: utils.Safe(s.Config.AdminName, "Admin")}},
		TemplateID: s.Config.TemplateID,
		Params:     NotificationParams(v),
	})
}

// saveCustomer applies the customer policy inside the caller's transaction.
func saveCustomer(ctx context.Context, q intdb.DBTX, in models.CustomerInput, upsert bool) (int64, error) {
	repo := repositories.CustomerRepo{DB: q}
	if upsert {
		return repo.Upsert(ctx, in)
	}
	return repo.Insert(ctx, in)
}
