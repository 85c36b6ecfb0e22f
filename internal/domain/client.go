package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	LastUsed  time.Time `json:"lastUsed"`
}

// NewClient creates a new client with a fresh id
func NewClient(name, email, phone, address string, now time.Time) *Client {
	return &Client{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Phone:     phone,
		Address:   address,
		CreatedAt: now,
		LastUsed:  now,
	}
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	return nil
}

// Touch records that the client was just used on an invoice.
// LastUsed drives recency ordering in client lists.
func (c *Client) Touch(now time.Time) {
	c.LastUsed = now
}

// Party returns a detached contact snapshot for embedding in an invoice.
func (c *Client) Party() Party {
	return Party{
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		Email:   c.Email,
	}
}
