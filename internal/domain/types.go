package domain

import "strings"

// ID is used across domain entities.
type ID int64

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// Normalize clamps page/size into sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

const (
	CustomerPolicyUpsert = "upsert"
	CustomerPolicyInsert = "insert"
)

// BookingConfig carries the configuration points of the booking workflow.
type BookingConfig struct {
	CustomerPolicy string
	RequirePhone   bool
	RequireCountry bool
	RequireTrip    bool
	NotifyStrict   bool
	AdminEmail     string
	AdminName      string
	TemplateID     int64
	Workflow       StatusWorkflow
}

// DefaultBookingConfig mirrors the env defaults.
func DefaultBookingConfig() BookingConfig {
	return BookingConfig{
		CustomerPolicy: CustomerPolicyUpsert,
		AdminName:      "Admin",
		TemplateID:     2,
		Workflow:       NewStatusWorkflow(DefaultStatuses),
	}
}

func (c BookingConfig) UpsertCustomers() bool {
	return strings.ToLower(c.CustomerPolicy) != CustomerPolicyInsert
}
