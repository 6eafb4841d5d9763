package client

import (
	"context"
	"net/http"
	"net/url"
)

// MyBookings lists the owner's bookings.
func (c *Client) MyBookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/my-bookings", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Bookings lists every booking (operator and back-office view).
func (c *Client) Bookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// StationBookings lists bookings for one station.
func (c *Client) StationBookings(ctx context.Context, stationID string) ([]Booking, error) {
	if err := requireField("station id", stationID); err != nil {
		return nil, err
	}
	var out []Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/station/"+url.PathEscape(stationID), nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Booking fetches one booking by id.
func (c *Client) Booking(ctx context.Context, id string) (*Booking, error) {
	if err := requireField("booking id", id); err != nil {
		return nil, err
	}
	var out Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(id), nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBooking books a slot and returns the created booking.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	if err := requireField("station id", req.StationID); err != nil {
		return nil, err
	}
	var out Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBooking moves an own active booking to a new time window. Zero
// times keep the stored value; server rules decide whether the move is
// legal.
func (c *Client) UpdateBooking(ctx context.Context, id string, req UpdateBookingRequest) (*Booking, error) {
	if err := requireField("booking id", id); err != nil {
		return nil, err
	}
	if req.StartTime.IsZero() && req.EndTime.IsZero() {
		return nil, &ValidationError{Field: "time window", Reason: "startTime or endTime must be set"}
	}
	var out Booking
	if err := c.do(ctx, http.MethodPut, "/api/bookings/"+url.PathEscape(id), req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelBooking is the owner cancelling their own active booking. No body
// is sent; server-side rules decide whether the cancellation is legal.
func (c *Client) CancelBooking(ctx context.Context, id string) error {
	if err := requireField("booking id", id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/bookings/"+url.PathEscape(id)+"/cancel", nil, nil, true)
}

// ConfirmBooking is the operator confirming an active booking.
func (c *Client) ConfirmBooking(ctx context.Context, id string) error {
	if err := requireField("booking id", id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/bookings/"+url.PathEscape(id)+"/confirm", nil, nil, true)
}

type operatorCancelRequest struct {
	Reason string `json:"reason"`
}

// CancelByOperator cancels a booking on the station side. The reason is
// mandatory; an empty reason fails locally and nothing is sent.
func (c *Client) CancelByOperator(ctx context.Context, id, reason string) error {
	if err := requireField("booking id", id); err != nil {
		return err
	}
	if err := requireField("reason", reason); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/bookings/"+url.PathEscape(id)+"/cancel-by-operator", operatorCancelRequest{Reason: reason}, nil, true)
}

// ResolveQR looks up the booking behind a scanned QR payload. The payload
// resolves only while the booking is confirmed.
func (c *Client) ResolveQR(ctx context.Context, code string) (*Booking, error) {
	if err := requireField("qr code", code); err != nil {
		return nil, err
	}
	var out Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/qr/"+url.PathEscape(code), nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}
