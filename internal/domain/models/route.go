package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Route is one scheduled departure of a bus on one calendar date.
type Route struct {
	ID            int64
	FromLocation  string
	ToLocation    string
	DepartureTime string
	Price         decimal.Decimal
	Date          time.Time
	BusID         int64
	BusName       string
}

// Offering is a search result deduplicated by bus and departure time.
type Offering struct {
	RouteID int64
	BusID   int64
	BusName string
	Price   decimal.Decimal
	Time    string
	From    string
	To      string
	Date    string
}
