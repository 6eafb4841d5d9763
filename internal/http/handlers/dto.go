package handlers

import (
	"evcharge/internal/models"
	"evcharge/timefmt"
)

type userResponse struct {
	ID          string       `json:"id"`
	NIC         string       `json:"nic"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Email       string       `json:"email"`
	Role        int          `json:"role"`
	StationID   string       `json:"stationId,omitempty"`
	PhoneNumber string       `json:"phoneNumber,omitempty"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   timefmt.Time `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		NIC:         u.NIC,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Role:        int(u.Role),
		StationID:   u.StationID,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
		CreatedAt:   timefmt.New(u.CreatedAt),
	}
}

type stationResponse struct {
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

func toStationResponse(s *models.Station) stationResponse {
	return stationResponse{
		ID:             s.ID,
		Name:           s.Name,
		Location:       s.Location,
		Type:           int(s.Type),
		TotalSlots:     s.TotalSlots,
		AvailableSlots: s.AvailableSlots,
		Status:         int(s.Status),
		PricePerHour:   s.PricePerHour,
		CreatedAt:      timefmt.New(s.CreatedAt),
	}
}

type bookingResponse struct {
	ID              string        `json:"id"`
	OwnerNIC        string        `json:"ownerNic"`
	StationID       string        `json:"stationId"`
	StationName     string        `json:"stationName,omitempty"`
	StationLocation string        `json:"stationLocation,omitempty"`
	StartTime       timefmt.Time  `json:"startTime"`
	EndTime         timefmt.Time  `json:"endTime"`
	Status          int           `json:"status"`
	QRCode          string        `json:"qrCode,omitempty"`
	TotalAmount     float64       `json:"totalAmount"`
	CreatedAt       timefmt.Time  `json:"createdAt"`
	UpdatedAt       timefmt.Time  `json:"updatedAt"`
	ConfirmedAt     *timefmt.Time `json:"confirmedAt,omitempty"`
	CancelledAt     *timefmt.Time `json:"cancelledAt,omitempty"`
}

func toBookingResponse(b *models.Booking, station *models.Station) bookingResponse {
	resp := bookingResponse{
		ID:          b.ID,
		OwnerNIC:    b.OwnerNIC,
		StationID:   b.StationID,
		StartTime:   timefmt.New(b.StartTime),
		EndTime:     timefmt.New(b.EndTime),
		Status:      int(b.Status),
		QRCode:      b.QRCode,
		TotalAmount: b.TotalAmount,
		CreatedAt:   timefmt.New(b.CreatedAt),
		UpdatedAt:   timefmt.New(b.UpdatedAt),
	}
	if station != nil {
		resp.StationName = station.Name
		resp.StationLocation = station.Location
	}
	if b.ConfirmedAt != nil {
		t := timefmt.New(*b.ConfirmedAt)
		resp.ConfirmedAt = &t
	}
	if b.CancelledAt != nil {
		t := timefmt.New(*b.CancelledAt)
		resp.CancelledAt = &t
	}
	return resp
}

type notificationResponse struct {
	ID              string            `json:"id"`
	RecipientNIC    string            `json:"recipientNic"`
	Title           string            `json:"title"`
	Message         string            `json:"message"`
	Type            int               `json:"type"`
	Priority        int               `json:"priority"`
	IsRead          bool              `json:"isRead"`
	RelatedEntityID string            `json:"relatedEntityId,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       timefmt.Time      `json:"createdAt"`
}

func toNotificationResponse(n *models.Notification) notificationResponse {
	return notificationResponse{
		ID:              n.ID,
		RecipientNIC:    n.RecipientNIC,
		Title:           n.Title,
		Message:         n.Message,
		Type:            int(n.Type),
		Priority:        int(n.Priority),
		IsRead:          n.IsRead,
		RelatedEntityID: n.RelatedEntityID,
		Metadata:        n.Metadata,
		CreatedAt:       timefmt.New(n.CreatedAt),
	}
}
