package backend

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, path: "/api/users/addresses/" + url.PathEscape(id), auth: true})
	return err
}

func (c *Client) SetDefaultAddress(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{method: http.MethodPatch, path: "/api/users/addresses/" + url.PathEscape(id) + "/set-default", auth: true})
	return err
}
