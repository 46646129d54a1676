package models

type Passenger struct {
	ID    int64
	Name  string
	Age   int
	Email string
	Phone string
}

// PassengerInput carries passenger fields submitted with a booking request.
type PassengerInput struct {
	Name  string
	Age   int
	Email string
	Phone string
}
