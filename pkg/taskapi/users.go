package taskapi

import (
	"context"
	"fmt"

	"github.com/me/taskdeck/pkg/model"
)

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResult carries the token and profile returned by a successful
// login. The server responds with a flat object.
type LoginResult struct {
	Token   string
	Profile model.Profile
}

// UpdateProfileRequest is the payload for updating the current user's
// profile. Password is optional; empty means keep the current one.
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// Register creates a new account and returns the server's confirmation
// message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	raw, err := c.Post(ctx, "/users/register", req)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := unmarshalInto(raw, &out); err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	if out.Message == "" {
		out.Message = "Registration successful"
	}
	return out.Message, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	raw, err := c.Post(ctx, "/users/login", req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var out struct {
		Token   string `json:"token"`
		ID      string `json:"_id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
	}
	if err := unmarshalInto(raw, &out); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("login: no token returned from server")
	}

	return &LoginResult{
		Token: out.Token,
		Profile: model.Profile{
			ID:      out.ID,
			Name:    out.Name,
			Email:   out.Email,
			IsAdmin: out.IsAdmin,
		},
	}, nil
}

// UpdateProfile updates the account with the given id and returns the
// updated profile record.
func (c *Client) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*model.Profile, error) {
	raw, err := c.Put(ctx, "/users/"+id, req)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	var profile model.Profile
	if err := unmarshalInto(raw, &profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &profile, nil
}

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]model.Profile, error) {
	raw, err := c.Get(ctx, "/users/all")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var out struct {
		AllUsers []model.Profile `json:"allUsers"`
	}
	if err := unmarshalInto(raw, &out); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out.AllUsers, nil
}

// DeleteUser removes the account with the given id. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if err := c.Delete(ctx, "/users/"+id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
