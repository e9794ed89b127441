package models

import "strings"

// Destination is a bookable trip endpoint.
type Destination struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Distance    float64 `db:"distance" json:"distance"`
	Duration    int     `db:"duration" json:"duration"`
	Latitude    float64 `db:"latitude" json:"latitude"`
	Longitude   float64 `db:"longitude" json:"longitude"`
	Description *string `db:"description" json:"description"`
	Image       *string `db:"image" json:"image_url"`
}

// DestinationInput is the admin create/update payload.
type DestinationInput struct {
	Name        string  `json:"name"`
	Distance    float64 `json:"distance"`
	Duration    int     `json:"duration"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

var vehicleTypeLabels = map[string]string{
	"sedan":   "Sedan",
	"wagon r": "Wagon R",
	"van":     "Van",
}

// ValidVehicleType reports whether t is one of the supported vehicle types.
func ValidVehicleType(t string) bool {
	_, ok := vehicleTypeLabels[strings.ToLower(strings.TrimSpace(t))]
	return ok
}

// Vehicle is identified by a free-text name or a fixed type.
type Vehicle struct {
	ID       int64   `db:"id" json:"id"`
	Name     *string `db:"name" json:"name"`
	Type     *string `db:"type" json:"type"`
	Capacity int     `db:"capacity" json:"capacity"`
	Image    *string `db:"image" json:"image"`
}

// TypeDisplay renders the vehicle type the way the website shows it.
func (v Vehicle) TypeDisplay() string {
	if v.Type == nil {
		return ""
	}
	if label, ok := vehicleTypeLabels[strings.ToLower(strings.TrimSpace(*v.Type))]; ok {
		return label
	}
	return strings.TrimSpace(*v.Type)
}

// Label is the name when set, else the type display.
func (v Vehicle) Label() string {
	if v.Name != nil && strings.TrimSpace(*v.Name) != "" {
		return strings.TrimSpace(*v.Name)
	}
	return v.TypeDisplay()
}

type VehicleInput struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Image    string `json:"image"`
}

// Price is one row of the vehicle/destination pricing table.
type Price struct {
	ID            int64   `db:"id" json:"id"`
	VehicleID     int64   `db:"vehicle_id" json:"vehicle_id"`
	DestinationID int64   `db:"destination_id" json:"destination_id"`
	Price         float64 `db:"price" json:"price"`
}

// PriceListing joins a price row with the labels shown to visitors.
type PriceListing struct {
	Price
	VehicleName     *string `db:"vehicle_name" json:"-"`
	VehicleType     *string `db:"vehicle_type" json:"-"`
	DestinationName string  `db:"destination_name" json:"destination_name"`
}

func (p PriceListing) Vehicle() Vehicle {
	return Vehicle{ID: p.VehicleID, Name: p.VehicleName, Type: p.VehicleType}
}

// VehicleOffer is a vehicle priced for one destination.
type VehicleOffer struct {
	ID              int64   `db:"id" json:"id"`
	Name            *string `db:"name" json:"name"`
	Type            *string `db:"type" json:"type"`
	Capacity        int     `db:"capacity" json:"capacity"`
	Image           *string `db:"image" json:"image_url"`
	Price           float64 `db:"price" json:"price"`
	DestinationID   int64   `db:"destination_id" json:"-"`
	DestinationName string  `db:"destination_name" json:"-"`
}

type PriceInput struct {
	VehicleID     int64   `json:"vehicle_id"`
	DestinationID int64   `json:"destination_id"`
	Price         float64 `json:"price"`
}

// VehicleView is the public vehicle listing entry.
type VehicleView struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	TypeDisplay string  `json:"type_display"`
	Label       string  `json:"label"`
	Capacity    int     `json:"capacity"`
	Image       *string `json:"image"`
}

func (v Vehicle) View() VehicleView {
	return VehicleView{
		ID:          v.ID,
		Name:        v.Name,
		Type:        v.Type,
		TypeDisplay: v.TypeDisplay(),
		Label:       v.Label(),
		Capacity:    v.Capacity,
		Image:       v.Image,
	}
}

// PriceView is the public price listing entry.
type PriceView struct {
	ID              int64   `json:"id"`
	VehicleID       int64   `json:"vehicle_id"`
	VehicleType     string  `json:"vehicle_type"`
	DestinationID   int64   `json:"destination_id"`
	DestinationName string  `json:"destination_name"`
	Price           float64 `json:"price"`
}

func (p PriceListing) View() PriceView {
	return PriceView{
		ID:              p.ID,
		VehicleID:       p.VehicleID,
		VehicleType:     p.Vehicle().Label(),
		DestinationID:   p.DestinationID,
		DestinationName: p.DestinationName,
		Price:           p.Price.Price,
	}
}

// DestinationRef is the short destination form attached to vehicle offers.
type DestinationRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
