package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bella-vista/domain"
)

type ActivityFeed interface {
	Recent(ctx context.Context, limit int) ([]domain.ChangeEvent, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ActivityClient reads the recent-changes feed from activity-svc.
type ActivityClient struct {
	baseURL string
	client  HTTPClient
}

var _ ActivityFeed = (*ActivityClient)(nil)

func NewActivityClient(baseURL string, client HTTPClient) *ActivityClient {
	return &ActivityClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (a *ActivityClient) Recent(ctx context.Context, limit int) ([]domain.ChangeEvent, error) {
	url := a.baseURL + "/api/activity/recent?limit=" + strconv.Itoa(limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: activity feed: %v", domain.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: activity feed status %d", domain.ErrStorageUnavailable, resp.StatusCode)
	}

	var events []domain.ChangeEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode activity feed: %w", err)
	}
	return events, nil
}
