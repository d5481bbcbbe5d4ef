package planfix

import (
	"context"
	"fmt"
)

type NoUserFoundErr struct{}

func (e NoUserFoundErr) Error() string {
	return "no planfix user was found with the provided email"
}

func (c *Client) FindUserByEmail(ctx context.Context, email string) (int, error) {
	// The email filter wants an explicit field 0, unlike the contact
	// filters.
	field := 0
	body := ListRequest{
		Offset:   0,
		PageSize: 100,
		Fields:   "id,name,midname,lastname,email",
		Filters: []Filter{
			{
				Type:     FilterUserEmail,
				Operator: "equal",
				Value:    email,
				Field:    &field,
			},
		},
	}

	users := UsersResp{}
	if err := c.apiRequest(ctx, "user/list", &body, &users); err != nil {
		return 0, fmt.Errorf("an error occured searching for the user by email: %w", err)
	}

	if users.Result != "success" || len(users.Users) == 0 {
		return 0, NoUserFoundErr{}
	}

	return users.Users[0].Id, nil
}
