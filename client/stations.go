package client

import (
	"context"
	"net/http"
)

// Stations lists every charging station.
func (c *Client) Stations(ctx context.Context) ([]Station, error) {
	var out []Station
	if err := c.do(ctx, http.MethodGet, "/api/chargingstations", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveStations lists stations currently accepting bookings.
func (c *Client) ActiveStations(ctx context.Context) ([]Station, error) {
	var out []Station
	if err := c.do(ctx, http.MethodGet, "/api/chargingstations/active", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}
