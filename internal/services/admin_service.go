package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	intconfig "charter/internal/config"
	intdb "charter/internal/db"
	"charter/internal/domain"
	"charter/internal/domain/models"
	"charter/internal/repositories"
	"charter/internal/utils"
)

// AdminService backs the back-office screens: searches, status changes and catalog edits.
type AdminService struct {
	DB        *sqlx.DB
	Workflow  domain.StatusWorkflow
	RequestID string
}

func (s AdminService) db() *sqlx.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AdminService) q() intdb.DBTX {
	if db := s.db(); db != nil {
		return db
	}
	return nil
}

func (s AdminService) SearchBookings(ctx context.Context, f models.BookingFilter, page domain.Pagination) ([]models.BookingView, domain.Pagination, error) {
	if f.Status != "" {
		status, err := s.Workflow.Canonical(f.Status)
		if err != nil {
			return nil, page, err
		}
		f.Status = status
	}
	if f.PickupDate != "" {
		if _, err := utils.ParseDate(f.PickupDate); err != nil {
			return nil, page, domain.ValidationError{Field: "pickup_date", Msg: "pickup_date must be YYYY-MM-DD", Err: err}
		}
	}
	page = page.Normalize()
	rows, total, err := repositories.BookingRepo{DB: s.q()}.Search(ctx, f, page)
	if err != nil {
		return nil, page, domain.InternalError{Msg: "Error fetching bookings", Err: err}
	}
	page.Total = total
	out := make([]models.BookingView, 0, len(rows))
	for _, b := range rows {
		out = append(out, b.View())
	}
	return out, page, nil
}

func (s AdminService) GetBooking(ctx context.Context, id int64) (models.BookingView, error) {
	b, err := repositories.BookingRepo{DB: s.q()}.GetDetail(ctx, id)
	if err != nil {
		return models.BookingView{}, lookupError("booking", "id", err)
	}
	return b.View(), nil
}

// SetStatus stores any configured status on the booking.
func (s AdminService) SetStatus(ctx context.Context, id int64, status string) (string, error) {
	status, err := s.Workflow.Canonical(status)
	if err != nil {
		return "", err
	}
	return s.changeStatus(ctx, id, func(string) (string, error) { return status, nil })
}

// AdvanceStatus moves the booking one step forward in the workflow.
func (s AdminService) AdvanceStatus(ctx context.Context, id int64) (string, error) {
	return s.changeStatus(ctx, id, s.Workflow.Next)
}

func (s AdminService) changeStatus(ctx context.Context, id int64, next func(string) (string, error)) (string, error) {
	var from, to string
	err := intdb.WithTx(ctx, s.db(), func(tx *sqlx.Tx) error {
		repo := repositories.BookingRepo{DB: tx}
		current, err := repo.GetStatusForUpdate(ctx, id)
		if err != nil {
			return lookupError("booking", "id", err)
		}
		from = current
		if to, err = next(current); err != nil {
			return err
		}
		if to == current {
			return nil
		}
		return repo.UpdateStatus(ctx, id, to)
	})
	if err != nil {
		if domain.IsNotFound(err) || domain.IsValidation(err) || domain.IsConflict(err) {
			return "", err
		}
		return "", domain.InternalError{Msg: "Error updating booking status", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "status", fmt.Sprintf("booking_id=%d from=%s to=%s", id, from, to))
	return to, nil
}

func (s AdminService) SearchCustomers(ctx context.Context, f models.CustomerFilter, page domain.Pagination) ([]models.Customer, domain.Pagination, error) {
	page = page.Normalize()
	rows, total, err := repositories.CustomerRepo{DB: s.q()}.Search(ctx, f, page)
	if err != nil {
		return nil, page, domain.InternalError{Msg: "Error fetching customers", Err: err}
	}
	page.Total = total
	return rows, page, nil
}

func (s AdminService) ListMessages(ctx context.Context, page domain.Pagination) ([]models.MessageListing, error) {
	rows, err := repositories.MessageRepo{DB: s.q()}.List(ctx, page)
	if err != nil {
		return nil, domain.InternalError{Msg: "Error fetching messages", Err: err}
	}
	return rows, nil
}

func validateDestination(in models.DestinationInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Required("name")
	}
	if in.Distance < 0 {
		return domain.ValidationError{Field: "distance", Msg: "distance must not be negative"}
	}
	if in.Duration < 0 {
		return domain.ValidationError{Field: "duration", Msg: "duration must not be negative"}
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return domain.ValidationError{Field: "latitude", Msg: "latitude must be between -90 and 90"}
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return domain.ValidationError{Field: "longitude", Msg: "longitude must be between -180 and 180"}
	}
	return nil
}

func (s AdminService) CreateDestination(ctx context.Context, in models.DestinationInput) (models.Destination, error) {
	if err := validateDestination(in); err != nil {
		return models.Destination{}, err
	}
	repo := repositories.DestinationRepo{DB: s.q()}
	id, err := repo.Create(ctx, in)
	if err != nil {
		return models.Destination{}, domain.InternalError{Msg: "Error creating destination", Err: err}
	}
	utils.LogEvent(s.RequestID, "catalog", "create_destination", fmt.Sprintf("destination_id=%d", id))
	d, err := repo.GetByID(ctx, id)
	if err != nil {
		return models.Destination{}, lookupError("destination", "id", err)
	}
	return d, nil
}

func (s AdminService) UpdateDestination(ctx context.Context, id int64, in models.DestinationInput) (models.Destination, error) {
	if err := validateDestination(in); err != nil {
		return models.Destination{}, err
	}
	repo := repositories.DestinationRepo{DB: s.q()}
	found, err := repo.Update(ctx, id, in)
	if err != nil {
		return models.Destination{}, domain.InternalError{Msg: "Error updating destination", Err: err}
	}
	if !found {
		return models.Destination{}, domain.NotFoundError{Resource: "destination", Field: "id"}
	}
	d, err := repo.GetByID(ctx, id)
	if err != nil {
		return models.Destination{}, lookupError("destination", "id", err)
	}
	return d, nil
}

func validateVehicle(in models.VehicleInput) error {
	name, typ := strings.TrimSpace(in.Name), strings.TrimSpace(in.Type)
	if name == "" && typ == "" {
		return domain.ValidationError{Field: "name", Msg: "name or type is required"}
	}
	if typ != "" && !models.ValidVehicleType(typ) {
		return domain.ValidationError{Field: "type", Msg: "type must be one of sedan, wagon r, van"}
	}
	if in.Capacity <= 0 {
		return domain.ValidationError{Field: "capacity", Msg: "capacity must be a positive integer"}
	}
	return nil
}

func vehicleWriteError(action string, err error) error {
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "vehicle", Msg: "a vehicle with this name already exists", Err: err}
	}
	return domain.InternalError{Msg: "Error " + action + " vehicle", Err: err}
}

func (s AdminService) CreateVehicle(ctx context.Context, in models.VehicleInput) (models.Vehicle, error) {
	if err := validateVehicle(in); err != nil {
		return models.Vehicle{}, err
	}
	repo := repositories.VehicleRepo{DB: s.q()}
	id, err := repo.Create(ctx, in)
	if err != nil {
		return models.Vehicle{}, vehicleWriteError("creating", err)
	}
	utils.LogEvent(s.RequestID, "catalog", "create_vehicle", fmt.Sprintf("vehicle_id=%d", id))
	v, err := repo.GetByID(ctx, id)
	if err != nil {
		return models.Vehicle{}, lookupError("vehicle", "id", err)
	}
	return v, nil
}

func (s AdminService) UpdateVehicle(ctx context.Context, id int64, in models.VehicleInput) (models.Vehicle, error) {
	if err := validateVehicle(in); err != nil {
		return models.Vehicle{}, err
	}
	repo := repositories.VehicleRepo{DB: s.q()}
	found, err := repo.Update(ctx, id, in)
	if err != nil {
		return models.Vehicle{}, vehicleWriteError("updating", err)
	}
	if !found {
		return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle", Field: "id"}
	}
	v, err := repo.GetByID(ctx, id)
	if err != nil {
		return models.Vehicle{}, lookupError("vehicle", "id", err)
	}
	return v, nil
}

// UpsertPrice sets the price of a vehicle/destination pair. Existing bookings keep
// the amount they were created with.
func (s AdminService) UpsertPrice(ctx context.Context, in models.PriceInput) (models.PriceView, error) {
	if in.VehicleID <= 0 {
		return models.PriceView{}, domain.Required("vehicle_id")
	}
	if in.DestinationID <= 0 {
		return models.PriceView{}, domain.Required("destination_id")
	}
	if in.Price < 0 {
		return models.PriceView{}, domain.ValidationError{Field: "price", Msg: "price must not be negative"}
	}
	q := s.q()
	if _, err := (repositories.VehicleRepo{DB: q}).GetByID(ctx, in.VehicleID); err != nil {
		return models.PriceView{}, lookupError("vehicle", "vehicle_id", err)
	}
	if _, err := (repositories.DestinationRepo{DB: q}).GetByID(ctx, in.DestinationID); err != nil {
		return models.PriceView{}, lookupError("destination", "destination_id", err)
	}

	repo := repositories.PriceRepo{DB: q}
	id, err := repo.Upsert(ctx, in)
	if err != nil {
		return models.PriceView{}, domain.InternalError{Msg: "Error saving price", Err: err}
	}
	utils.LogEvent(s.RequestID, "catalog", "upsert_price",
		fmt.Sprintf("price_id=%d vehicle_id=%d destination_id=%d price=%s", id, in.VehicleID, in.DestinationID, utils.FormatMoney(in.Price)))
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return models.PriceView{}, lookupError("price", "id", err)
	}
	return p.View(), nil
}

func (s AdminService) DeletePrice(ctx context.Context, id int64) error {
	found, err := repositories.PriceRepo{DB: s.q()}.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Msg: "Error deleting price", Err: err}
	}
	if !found {
		return domain.NotFoundError{Resource: "price", Field: "id"}
	}
	utils.LogEvent(s.RequestID, "catalog", "delete_price", fmt.Sprintf("price_id=%d", id))
	return nil
}

func (s AdminService) CreateTestimonial(ctx context.Context, t models.Testimonial) (int64, error) {
	if strings.TrimSpace(t.CustomerName) == "" {
		return 0, domain.Required("customer_name")
	}
	if strings.TrimSpace(t.Review) == "" {
		return 0, domain.Required("review")
	}
	id, err := repositories.TestimonialRepo{DB: s.q()}.Create(ctx, t)
	if err != nil {
		return 0, domain.InternalError{Msg: "Error creating testimonial", Err: err}
	}
	return id, nil
}
