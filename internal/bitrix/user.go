package bitrix

import (
	"context"
	"fmt"
)

type User struct {
	Id    string `json:"ID"`
	Email string `json:"EMAIL"`
	Name  string `json:"NAME"`
}

// GetUser wraps user.get, which returns a list even for a single id.
func (c *Client) GetUser(ctx context.Context, userId int) (*User, error) {
	var users []User
	if err := c.call(ctx, "user.get", map[string]int{"ID": userId}, &users); err != nil {
		return nil, fmt.Errorf("an error occured getting the user: %w", err)
	}

	if len(users) == 0 {
		return nil, nil
	}

	return &users[0], nil
}
