package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the only accepted date of birth format (mm/dd/yyyy).
const DateLayout = "01/02/2006"

// Date is a calendar date serialized as mm/dd/yyyy.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// String formats d using DateLayout.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := ParseDOB(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// User is a stored user record.
// Phone and Picture are nil when absent.
type User struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	ZipCode   string  `json:"zipCode"`
	Phone     *string `json:"phone"`
	Email     string  `json:"email"`
	Dob       Date    `json:"dob"`
	Ssn       string  `json:"ssn"`
	Picture   *string `json:"picture"`
}

func (u User) String() string {
	return fmt.Sprintf("User{ID: %d, Email: %q}", u.ID, u.Email)
}

// UserInput is an unvalidated candidate record as it arrives from a CSV row
// or a JSON body. Every attribute is raw text; an id is never accepted.
type UserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Dob       string `json:"dob"`
	Ssn       string `json:"ssn"`
	Picture   string `json:"picture"`
}

// values returns pointers to the attributes in UserFields order.
func (in *UserInput) values() []*string {
	return []*string{
		&in.FirstName,
		&in.LastName,
		&in.Address,
		&in.City,
		&in.State,
		&in.ZipCode,
		&in.Phone,
		&in.Email,
		&in.Dob,
		&in.Ssn,
		&in.Picture,
	}
}
