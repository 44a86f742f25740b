package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func jobPath(jobUUID string) string {
	return fmt.Sprintf("/api/jobs/%s", url.PathEscape(jobUUID))
}

// CreateJob creates a job in DRAFT state
func (c *Client) CreateJob(ctx context.Context, job JobCreate) (*Job, error) {
	if err := validateRequest(job); err != nil {
		return nil, err
	}

	var created Job
	if err := c.Call(ctx, Request{Method: http.MethodPost, Path: "/api/jobs", Body: job}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetJob returns a job by UUID
func (c *Client) GetJob(ctx context.Context, jobUUID string) (*Job, error) {
	var job Job
	if err := c.Call(ctx, Request{Method: http.MethodGet, Path: jobPath(jobUUID)}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs returns the caller's jobs, optionally filtered by state.
// The state query parameter is only sent when state is set.
func (c *Client) ListJobs(ctx context.Context, state JobState) ([]Job, error) {
	req := Request{Method: http.MethodGet, Path: "/api/jobs"}
	if state != "" {
		req.Query = url.Values{"state": {string(state)}}
	}

	var jobs []Job
	if err := c.Call(ctx, req, &jobs); err != nil {
		return nil, err
	}
	return nonNilJobs(jobs), nil
}

// UpdateJob applies a partial update to a DRAFT job
func (c *Client) UpdateJob(ctx context.Context, jobUUID string, update JobUpdate) (*Job, error) {
	if err := validateRequest(update); err != nil {
		return nil, err
	}

	var job Job
	if err := c.Call(ctx, Request{Method: http.MethodPut, Path: jobPath(jobUUID), Body: update}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob deletes a DRAFT job
func (c *Client) DeleteJob(ctx context.Context, jobUUID string) error {
	return c.Call(ctx, Request{Method: http.MethodDelete, Path: jobPath(jobUUID)}, nil)
}

// PublishJob moves a job from DRAFT to OPEN
func (c *Client) PublishJob(ctx context.Context, jobUUID string) (*Job, error) {
	req := Request{
		Method: http.MethodPost,
		Path:   jobPath(jobUUID) + "/publish",
		Body:   map[string]any{},
	}

	var job Job
	if err := c.Call(ctx, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// MatchingJobs returns the OPEN jobs that match the printer's profile
func (c *Client) MatchingJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := c.Call(ctx, Request{Method: http.MethodGet, Path: "/api/jobs/matching"}, &jobs); err != nil {
		return nil, err
	}
	return nonNilJobs(jobs), nil
}

// nonNilJobs keeps empty lists encoding as [] even when the backend sent null or nothing
func nonNilJobs(jobs []Job) []Job {
	if jobs == nil {
		return []Job{}
	}
	return jobs
}
