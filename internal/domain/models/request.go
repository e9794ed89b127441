package models

import (
	"bytes"
	stdjson "encoding/json"
	"reflect"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FlexInt accepts 5, "5", "" and null. Present is false for the empty forms;
// Invalid is set when a value was sent but is not an integer.
type FlexInt struct {
	Value   int64
	Present bool
	Invalid bool
	Raw     string
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	f.Raw = raw
	if raw == "" {
		return nil
	}
	f.Present = true
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fl, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || fl != float64(int64(fl)) {
			f.Invalid = true
			return nil
		}
		n = int64(fl)
	}
	f.Value = n
	return nil
}

// typeError is reported as an *encoding/json.UnmarshalTypeError so the decoder
// fills in the offending field name.
func typeError(b []byte, t reflect.Type) error {
	kind := "value " + string(b)
	switch b[0] {
	case '{':
		kind = "object"
	case '[':
		kind = "array"
	case 't', 'f':
		kind = "bool"
	case '"':
		kind = "string " + string(b)
	}
	return &stdjson.UnmarshalTypeError{Value: kind, Type: t}
}

// FlexBool accepts true/false, 1/0 and their string forms; anything else is a type error.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	s := strings.Trim(string(b), `"`)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "0", "false", "no", "off":
		*f = false
	case "1", "true", "yes", "on":
		*f = true
	default:
		*f = false
		return typeError(b, reflect.TypeOf(true))
	}
	return nil
}

// FlexString accepts a JSON string or number (phone numbers arrive both ways).
// Objects, arrays and booleans are type errors.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if c := b[0]; c != '"' && c != '-' && (c < '0' || c > '9') {
		*f = ""
		return typeError(b, reflect.TypeOf(""))
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(string(b))
	return nil
}

func (f FlexString) String() string { return strings.TrimSpace(string(f)) }

// BookingRequest is the public booking payload.
type BookingRequest struct {
	FirstName       FlexString `json:"first_name"`
	LastName        FlexString `json:"last_name"`
	Email           FlexString `json:"email"`
	PhoneNo         FlexString `json:"phone_no"`
	Country         FlexString `json:"country"`
	Message         FlexString `json:"message"`
	VehicleID       FlexInt    `json:"vehicle_id"`
	DestinationID   FlexInt    `json:"destination_id"`
	NoOfPassengers  FlexInt    `json:"no_of_passengers"`
	PickupDate      FlexString `json:"pickup_date"`
	PickupTime      FlexString `json:"pickup_time"`
	PickupLocation  FlexString `json:"pickup_location"`
	DropoffLocation FlexString `json:"dropoff_location"`
	AdditionalInfo  FlexString `json:"additional_info"`
	IsReturnTrip    FlexBool   `json:"is_return_trip"`
}

// ContactRequest is the contact-us form; every field is required.
type ContactRequest struct {
	FirstName FlexString `json:"first_name"`
	LastName  FlexString `json:"last_name"`
	Email     FlexString `json:"email"`
	PhoneNo   FlexString `json:"phone_no"`
	Country   FlexString `json:"country"`
	Message   FlexString `json:"message"`
}

type NewsletterRequest struct {
	Email FlexString `json:"email"`
}

type UnsubscribeRequest struct {
	Email FlexString `json:"email"`
	Token FlexString `json:"token"`
}

type StatusRequest struct {
	Status string `json:"status"`
}
