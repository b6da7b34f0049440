package backend

import (
	"context"
	"net/http"

	"github.com/wichananm65/ride-shop-client/internal/user"
)

type profileUpdate struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Gender  string `json:"gender,omitempty"`
}

// UpdateProfile sends the editable fields and returns the server's copy.
// The server may answer with the profile as data or under data.user.
func (c *Client) UpdateProfile(ctx context.Context, p user.Profile) (user.Profile, error) {
	env, err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/api/users/profile",
		auth:   true,
		body: profileUpdate{
			Name: p.Name, Email: p.Email, Phone: p.Phone, Address: p.Address, Gender: p.Gender,
		},
	})
	if err != nil {
		return user.Profile{}, err
	}

	var wrapped struct {
		User *user.Profile `json:"user"`
	}
	if err := decodeData(env.Data, &wrapped); err == nil && wrapped.User != nil {
		return *wrapped.User, nil
	}
	var out user.Profile
	if err := decodeData(env.Data, &out); err != nil {
		return user.Profile{}, err
	}
	if out.Identifier() == "" && out.Name == "" {
		return p, nil
	}
	return out, nil
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, path: "/api/users/me", auth: true})
	return err
}
