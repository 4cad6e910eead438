package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

type activityAdapter struct {
	container mono.ServiceContainer
}

// NewActivityAdapter creates a new adapter for activity services.
func NewActivityAdapter(container mono.ServiceContainer) ActivityPort {
	if container == nil {
		panic("activity adapter requires non-nil ServiceContainer")
	}
	return &activityAdapter{container: container}
}

// ListActivity returns recent activity via the list-activity service.
func (a *activityAdapter) ListActivity(ctx context.Context, limit int) ([]Entry, error) {
	req := ListActivityRequest{Limit: limit}
	var resp ListActivityResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-activity",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-activity service call failed: %w", err)
	}
	if resp.Entries == nil {
		resp.Entries = []Entry{}
	}
	return resp.Entries, nil
}
