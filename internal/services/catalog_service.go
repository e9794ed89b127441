package services

import (
	"context"

	intdb "charter/internal/db"
	"charter/internal/domain"
	"charter/internal/domain/models"
	"charter/internal/repositories"
)

// CatalogService serves the public destination, vehicle, trip and price reads.
type CatalogService struct {
	DB intdb.DBTX
}

func (s CatalogService) destinations() repositories.DestinationRepo {
	return repositories.DestinationRepo{DB: s.DB}
}

func (s CatalogService) vehicles() repositories.VehicleRepo {
	return repositories.VehicleRepo{DB: s.DB}
}

func (s CatalogService) prices() repositories.PriceRepo {
	return repositories.PriceRepo{DB: s.DB}
}

func (s CatalogService) ListDestinations(ctx context.Context) ([]models.Destination, error) {
	out, err := s.destinations().List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "Error fetching destinations", Err: err}
	}
	return out, nil
}

func (s CatalogService) GetDestination(ctx context.Context, id int64) (models.Destination, error) {
	d, err := s.destinations().GetByID(ctx, id)
	if err != nil {
		return models.Destination{}, lookupError("destination", "id", err)
	}
	return d, nil
}

// VehicleListing is either every vehicle or the vehicles priced for one destination.
type VehicleListing struct {
	Vehicles    []any
	Destination *models.DestinationRef
}

func (s CatalogService) ListVehicles(ctx context.Context, destinationID int64) (VehicleListing, error) {
	if destinationID <= 0 {
		all, err := s.vehicles().List(ctx)
		if err != nil {
			return VehicleListing{}, domain.InternalError{Msg: "Error fetching vehicles", Err: err}
		}
		out := VehicleListing{Vehicles: make([]any, 0, len(all))}
		for _, v := range all {
			out.Vehicles = append(out.Vehicles, v.View())
		}
		return out, nil
	}

	offers, err := s.vehicles().ListForDestination(ctx, destinationID)
	if err != nil {
		return VehicleListing{}, domain.InternalError{Msg: "Error fetching vehicles", Err: err}
	}
	out := VehicleListing{Vehicles: make([]any, 0, len(offers))}
	for _, o := range offers {
		out.Vehicles = append(out.Vehicles, o)
		if out.Destination == nil {
			out.Destination = &models.DestinationRef{ID: o.DestinationID, Name: o.DestinationName}
		}
	}
	return out, nil
}

func (s CatalogService) TripForDestination(ctx context.Context, destinationID int64) (models.TripDetails, error) {
	d, err := s.GetDestination(ctx, destinationID)
	if err != nil {
		return models.TripDetails{}, err
	}
	return models.TripFromDestination(d), nil
}

// TripForBooking returns the trip details of the booking's destination.
func (s CatalogService) TripForBooking(ctx context.Context, bookingID int64) (models.TripDetails, error) {
	b, err := repositories.BookingRepo{DB: s.DB}.GetDetail(ctx, bookingID)
	if err != nil {
		return models.TripDetails{}, lookupError("booking", "booking_id", err)
	}
	if b.DestinationID == nil {
		return models.TripDetails{}, domain.NotFoundError{Resource: "destination", Field: "booking_id"}
	}
	return s.TripForDestination(ctx, *b.DestinationID)
}

// ListPrices reports NotFound when nothing matches the filters.
func (s CatalogService) ListPrices(ctx context.Context, vehicleID, destinationID int64) ([]models.PriceView, error) {
	rows, err := s.prices().List(ctx, vehicleID, destinationID)
	if err != nil {
		return nil, domain.InternalError{Msg: "Error fetching prices", Err: err}
	}
	if len(rows) == 0 {
		return nil, domain.NotFoundError{Resource: "price"}
	}
	out := make([]models.PriceView, 0, len(rows))
	for _, p := range rows {
		out = append(out, p.View())
	}
	return out, nil
}

func (s CatalogService) GetPrice(ctx context.Context, id int64) (models.PriceView, error) {
	p, err := s.prices().GetByID(ctx, id)
	if err != nil {
		return models.PriceView{}, lookupError("price", "id", err)
	}
	return p.View(), nil
}

func (s CatalogService) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := repositories.TestimonialRepo{DB: s.DB}.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "Error fetching testimonials", Err: err}
	}
	return rows, nil
}

// lookupError turns a missing row into NotFound and anything else into Internal.
func lookupError(resource, field string, err error) error {
	if intdb.IsNoRows(err) {
		return domain.NotFoundError{Resource: resource, Field: field, Err: err}
	}
	return domain.InternalError{Msg: "failed to load " + resource, Err: err}
}
