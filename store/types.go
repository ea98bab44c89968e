package store

import (
	"errors"
	"time"
)

var (
	ErrInvalidArgument = errors.New("store: invalid argument")
	ErrNotFound        = errors.New("store: employee not found")
)

// Employee is one row of the Employees table. ID is assigned by storage
// on insert and must not be set by callers of Add. Region and ReportsTo
// are the only nullable columns; nil means the column is NULL. ReportsTo
// names another employee's ID but is not validated as a reference.
type Employee struct {
	ID              int64
	LastName        string
	FirstName       string
	Title           string
	TitleOfCourtesy string
	BirthDate       time.Time
	HireDate        time.Time
	Address         string
	City            string
	Region          *string
	PostalCode      string
	Country         string
	HomePhone       string
	Extension       string
	Notes           string
	ReportsTo       *int64
	PhotoPath       string
}
