package client

import (
	"evcharge/booking"
	"evcharge/timefmt"
)

// User is the account payload returned by auth and profile endpoints.
type User struct {
	ID          string      `json:"id"`
	NIC         string      `json:"nic"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Email       string      `json:"email"`
	Role        int         `json:"role"`
	StationID   string      `json:"stationId,omitempty"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   timefmt.Time `json:"createdAt"`
}

// ClientRole maps the wire role onto the client-side role model.
func (u User) ClientRole() (booking.Role, bool) {
	return booking.RoleFromWire(u.Role)
}

// LoginResponse carries the bearer token and the authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest is the full profile submitted at registration.
type RegisterRequest struct {
	NIC         string `json:"nic"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        int    `json:"role"`
	StationID   string `json:"stationId,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Password    string `json:"password,omitempty"`
}

// Station is a charging station listing entry.
type Station struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Location       string       `json:"location"`
	Type           int          `json:"type"`
	TotalSlots     int          `json:"totalSlots"`
	AvailableSlots int          `json:"availableSlots"`
	Status         int          `json:"status"`
	PricePerHour   float64      `json:"pricePerHour"`
	CreatedAt      timefmt.Time `json:"createdAt"`
}

// Booking is the server's authoritative booking payload.
type Booking struct {
	ID              string         `json:"id"`
	OwnerNIC        string         `json:"ownerNic"`
	StationID       string         `json:"stationId"`
	StationName     string         `json:"stationName,omitempty"`
	StationLocation string         `json:"stationLocation,omitempty"`
	StartTime       timefmt.Time   `json:"startTime"`
	EndTime         timefmt.Time   `json:"endTime"`
	Status          booking.Status `json:"status"`
	QRCode          string         `json:"qrCode,omitempty"`
	TotalAmount     float64        `json:"totalAmount"`
	CreatedAt       timefmt.Time   `json:"createdAt"`
	UpdatedAt       timefmt.Time   `json:"updatedAt"`
	ConfirmedAt     *timefmt.Time  `json:"confirmedAt,omitempty"`
	CancelledAt     *timefmt.Time  `json:"cancelledAt,omitempty"`
}

// CreateBookingRequest books a slot at a station.
type CreateBookingRequest struct {
	StationID string       `json:"stationId"`
	StartTime timefmt.Time `json:"startTime"`
	EndTime   timefmt.Time `json:"endTime"`
}

// UpdateBookingRequest moves a booking's time window. Zero times marshal
// as null and leave the stored value unchanged.
type UpdateBookingRequest struct {
	StartTime timefmt.Time `json:"startTime"`
	EndTime   timefmt.Time `json:"endTime"`
}

// Notification is one entry of the pull-based feed, newest first as
// ordered by the server.
type Notification struct {
	ID              string                 `json:"id"`
	RecipientNIC    string                 `json:"recipientNic"`
	Title           string                 `json:"title"`
	Message         string                 `json:"message"`
	Type            int                    `json:"type"`
	Priority        int                    `json:"priority"`
	IsRead          bool                   `json:"isRead"`
	RelatedEntityID string                 `json:"relatedEntityId,omitempty"`
	CreatedAt       timefmt.Time           `json:"createdAt"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}
