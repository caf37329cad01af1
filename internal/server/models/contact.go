package models

import "time"

// Contact belongs to exactly one user. Only FirstName is mandatory.
type Contact struct {
	ID        int64
	UserID    int64
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address belongs to a contact and, through it, to the contact's owner.
// Only Country is mandatory.
type Address struct {
	ID         int64
	ContactID  int64
	Street     *string
	City       *string
	Province   *string
	Country    string
	PostalCode *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
