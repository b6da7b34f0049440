package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/wichananm65/ride-shop-client/internal/ride"
)

type remoteRide struct {
	ride.Ride
	MongoID string `json:"_id"`
}

func (c *Client) listRides(ctx context.Context, path string) ([]ride.Ride, error) {
	env, err := c.do(ctx, call{method: http.MethodGet, path: path, auth: true})
	if err != nil {
		return nil, err
	}
	var raw []remoteRide
	if err := decodeList(env.Data, &raw, "rides", "travels", "history"); err != nil {
		return nil, err
	}
	out := make([]ride.Ride, 0, len(raw))
	for _, r := range raw {
		rd := r.Ride
		if rd.ID == "" {
			rd.ID = r.MongoID
		}
		out = append(out, rd)
	}
	return out, nil
}

func (c *Client) TravelHistory(ctx context.Context) ([]ride.Ride, error) {
	return c.listRides(ctx, "/api/travels/history")
}

func (c *Client) RidesByUser(ctx context.Context, customerID string) ([]ride.Ride, error) {
	return c.listRides(ctx, "/api/rides/user/"+url.PathEscape(customerID))
}

func (c *Client) Rides(ctx context.Context) ([]ride.Ride, error) {
	return c.listRides(ctx, "/api/rides")
}

func (c *Client) SubmitReport(ctx context.Context, r ride.Report) error {
	_, err := c.do(ctx, call{method: http.MethodPost, path: "/api/reports", body: r, auth: true})
	return err
}
