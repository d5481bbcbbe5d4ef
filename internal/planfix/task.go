package planfix

import (
	"context"
	"fmt"
)

func (c *Client) PostTask(ctx context.Context, payload *TaskPostBody) (int, error) {
	resp := PostResp{}
	if err := c.apiRequest(ctx, "task/", payload, &resp); err != nil {
		return 0, fmt.Errorf("an error occured creating the task: %w", err)
	}

	return resp.Id, nil
}
