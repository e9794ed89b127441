package models

import "time"

type Customer struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	PhoneNo   *string   `db:"phone_no" json:"phone_no"`
	Country   *string   `db:"country" json:"country"`
	Message   *string   `db:"message" json:"message,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CustomerInput is the validated customer part of a booking or contact request.
type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	PhoneNo   string
	Country   string
	Message   string
}

func (c CustomerInput) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Message struct {
	ID         int64     `db:"id" json:"id"`
	CustomerID int64     `db:"customer_id" json:"customer_id"`
	Message    string    `db:"message" json:"message"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// MessageListing is a message joined with its sender for the admin list.
type MessageListing struct {
	Message
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
}

type Testimonial struct {
	ID           int64     `db:"id" json:"id"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	Country      string    `db:"country" json:"country"`
	ProfileIcon  *string   `db:"profile_icon" json:"profile_icon"`
	Review       string    `db:"review" json:"review"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Newsletter struct {
	ID         int64      `db:"id" json:"id"`
	Email      string     `db:"email" json:"email"`
	Token      string     `db:"token" json:"-"`
	Verified   bool       `db:"verified" json:"verified"`
	VerifiedAt *time.Time `db:"verified_at" json:"verified_at"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
