package backend

import (
	"context"
	"net/http"

	"agusstore/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a bearer token. The token is issued and
// later validated by the backend; this application only stores it in the
// session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var resp loginResponse
	err := c.request(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.Token, &resp.User, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account on the backend.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var user models.User
	err := c.request(ctx, http.MethodPost, "/auth/register", "", registerRequest{Name: name, Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
