package models

// Bus owns the seats and routes that reference it.
type Bus struct {
	ID       int64
	Name     string
	Capacity int
}
