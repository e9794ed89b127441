package models

import "time"

// Booking is a persisted reservation request. Price holds the amount copied
// from the price row at creation time.
type Booking struct {
	ID              int64     `db:"id" json:"id"`
	CustomerID      int64     `db:"customer_id" json:"customer_id"`
	VehicleID       *int64    `db:"vehicle_id" json:"vehicle_id"`
	DestinationID   *int64    `db:"destination_id" json:"destination_id"`
	PriceID         *int64    `db:"vehicle_destination_price_id" json:"vehicle_destination_price_id"`
	Price           *float64  `db:"price" json:"price"`
	NoOfPassengers  int       `db:"no_of_passengers" json:"no_of_passengers"`
	PickupLocation  string    `db:"pickup_location" json:"pickup_location"`
	DropoffLocation string    `db:"dropoff_location" json:"dropoff_location"`
	PickupDate      string    `db:"pickup_date" json:"pickup_date"`
	PickupTime      string    `db:"pickup_time" json:"pickup_time"`
	AdditionalInfo  string    `db:"additional_info" json:"additional_info"`
	IsReturnTrip    bool      `db:"is_return_trip" json:"is_return_trip"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// BookingDetail is a booking joined with customer, vehicle and destination labels.
type BookingDetail struct {
	Booking
	FirstName       string  `db:"first_name" json:"first_name"`
	LastName        string  `db:"last_name" json:"last_name"`
	Email           string  `db:"email" json:"email"`
	PhoneNo         *string `db:"phone_no" json:"phone_no"`
	Country         *string `db:"country" json:"country"`
	VehicleName     *string `db:"vehicle_name" json:"-"`
	VehicleType     *string `db:"vehicle_type" json:"-"`
	DestinationName *string `db:"destination_name" json:"destination_name"`
}

func (b BookingDetail) CustomerName() string {
	return b.FirstName + " " + b.LastName
}

func (b BookingDetail) VehicleLabel() string {
	if b.VehicleID == nil {
		return ""
	}
	return Vehicle{Name: b.VehicleName, Type: b.VehicleType}.Label()
}

// NewBooking is the validated write-side input for the booking writer.
type NewBooking struct {
	CustomerID      int64
	VehicleID       *int64
	DestinationID   *int64
	PriceID         *int64
	Price           *float64
	NoOfPassengers  int
	PickupLocation  string
	DropoffLocation string
	PickupDate      time.Time
	PickupTime      string
	AdditionalInfo  string
	IsReturnTrip    bool
	Status          string
}

// BookingFilter drives the admin booking search.
type BookingFilter struct {
	Query         string
	Status        string
	VehicleID     int64
	DestinationID int64
	PickupDate    string
	IsReturnTrip  *bool
}

// CustomerFilter drives the admin customer search.
type CustomerFilter struct {
	Query   string
	Country string
}

// TripDetails is the distance/duration/coordinates view of a destination.
type TripDetails struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Distance  *float64 `json:"distance"`
	Duration  int      `json:"duration"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func TripFromDestination(d Destination) TripDetails {
	nz := func(v float64) *float64 {
		if v == 0 {
			return nil
		}
		return &v
	}
	return TripDetails{
		ID:        d.ID,
		Name:      d.Name,
		Distance:  nz(d.Distance),
		Duration:  d.Duration,
		Latitude:  nz(d.Latitude),
		Longitude: nz(d.Longitude),
	}
}

// BookingView is the admin representation with display labels resolved.
type BookingView struct {
	BookingDetail
	Customer string `json:"customer"`
	Vehicle  string `json:"vehicle"`
}

func (b BookingDetail) View() BookingView {
	return BookingView{BookingDetail: b, Customer: b.CustomerName(), Vehicle: b.VehicleLabel()}
}
