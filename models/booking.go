package models

import "time"

// BookingRequest is built fresh for every reservation submit and dropped
// once the response has been handled.
type BookingRequest struct {
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	CheckIn     time.Time `json:"checking_date"`
	CheckOut    time.Time `json:"checkout_date"`
	RoomID      uint      `json:"room"`
	CustomerID  uint      `json:"customer"`
}

// Booking is the record the hotel API answers with after a booking is created.
type Booking struct {
	ID          uint       `json:"id"`
	RoomID      uint       `json:"room"`
	CustomerID  uint       `json:"customer"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	BookingDate *time.Time `json:"booking_date,omitempty"`
	CheckIn     *time.Time `json:"checking_date,omitempty"`
	CheckOut    *time.Time `json:"checkout_date,omitempty"`
}

// CheckIn is one row of the staff dashboard: a room currently occupied.
type CheckIn struct {
	ID           uint   `json:"id"`
	RoomID       uint   `json:"room_id"`
	RoomSlug     string `json:"room_slug"`
	CustomerID   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	PhoneNumber  string `json:"phone_number"`
	Email        string `json:"email"`
}

// CheckoutRequest is the body of the checkout call; pk is the room id.
type CheckoutRequest struct {
	RoomID uint `json:"pk"`
}
