package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
	"github.com/wichananm65/ride-shop-client/internal/order"
)

// TestConnection probes the order service with its own short timeout.
func (c *Client) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()
	_, err := c.do(ctx, call{method: http.MethodGet, path: "/api/orders/test-connection"})
	return err
}

type createdOrder struct {
	OrderID string `json:"orderId"`
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Status  string `json:"status"`
	Order   *struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	} `json:"order"`
}

func (o createdOrder) id() string {
	for _, v := range []string{o.OrderID, o.ID, o.MongoID} {
		if v != "" {
			return v
		}
	}
	if o.Order != nil {
		for _, v := range []string{o.Order.OrderID, o.Order.ID, o.Order.MongoID} {
			if v != "" {
				return v
			}
		}
	}
	return ""
}

// CreateOrder submits req. The idempotency key lets the server drop a
// duplicate when the same submission is retried.
func (c *Client) CreateOrder(ctx context.Context, req order.Request, idempotencyKey string) (order.Confirmation, error) {
	rq := call{method: http.MethodPost, path: "/api/orders/create", body: req, auth: true}
	if idempotencyKey != "" {
		rq.header = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	env, err := c.do(ctx, rq)
	if err != nil {
		return order.Confirmation{}, err
	}

	var created createdOrder
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &created); err != nil {
			return order.Confirmation{}, apperr.Business(http.StatusOK, "")
		}
	}
	conf := order.Confirmation{OrderID: created.id(), Status: created.Status, Message: env.message()}
	if conf.Status == "" && created.Order != nil {
		conf.Status = created.Order.Status
	}
	return conf, nil
}
