// Package client provides a typed wrapper over the training mutation API.
// It validates requirement keys before any network call and invalidates
// named cache keys on successful mutations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"securecare/internal/models"
	"securecare/internal/training"
)

// ErrReadOnly is returned for award fields, which can never be written
// through the schedule/complete path. The check runs client-side; no
// request is made.
var ErrReadOnly = errors.New("award fields cannot be written directly")

// RequestError describes a failed API request. For HTTP-level failures the
// status text is preserved; for application errors the server's error code
// and message are carried through.
type RequestError struct {
	StatusCode int
	Status     string
	Code       string
	Message    string
}

func (e *RequestError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("request failed: %s", e.Status)
}

// Invalidator receives the cache keys touched by a successful mutation.
type Invalidator interface {
	Invalidate(keys ...string)
}

// Client is a typed API client for the training mutation endpoints.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	token       string
	invalidator Invalidator
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithInvalidator sets the cache invalidator notified after successful
// mutations.
func WithInvalidator(inv Invalidator) Option {
	return func(c *Client) { c.invalidator = inv }
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// validateKey rejects unknown and read-only requirement keys before any
// network traffic.
func validateKey(key training.RequirementKey) error {
	_, err := training.ColumnsFor(key)
	if errors.Is(err, training.ErrReadOnlyRequirement) {
		return ErrReadOnly
	}
	if err != nil {
		return err
	}
	return nil
}

// envelope matches the server's successful mutation response.
type envelope struct {
	Employee *models.Employee `json:"employee"`
}

// errorEnvelope matches the server's error response.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (*models.Employee, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		reqErr := &RequestError{StatusCode: resp.StatusCode, Status: resp.Status}
		var apiErr errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
			reqErr.Code = apiErr.Error.Code
			reqErr.Message = apiErr.Error.Message
		}
		return nil, reqErr
	}

	var result envelope
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Employee, nil
}

func (c *Client) mutate(ctx context.Context, method, path, employeeID string, payload interface{}) (*models.Employee, error) {
	employee, err := c.do(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	if c.invalidator != nil {
		c.invalidator.Invalidate("employee:"+employeeID, "employees", "stats:levels")
	}
	return employee, nil
}

func trainingPath(employeeID string, level training.Level, op string) string {
	return fmt.Sprintf("/employees/%s/training/%s/%s", employeeID, level, op)
}

// Assign starts an employee on a certification level.
func (c *Client) Assign(ctx context.Context, employeeID string, level training.Level) (*models.Employee, error) {
	return c.mutate(ctx, http.MethodPost, trainingPath(employeeID, level, "assign"), employeeID, nil)
}

type scheduleBody struct {
	Requirement string `json:"requirement"`
	Date        string `json:"date"`
}

// Schedule sets a requirement's scheduled date.
func (c *Client) Schedule(ctx context.Context, employeeID string, level training.Level, key training.RequirementKey, date time.Time) (*models.Employee, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	body := scheduleBody{Requirement: string(key), Date: date.Format("2006-01-02")}
	return c.mutate(ctx, http.MethodPost, trainingPath(employeeID, level, "schedule"), employeeID, body)
}

// Reschedule overwrites a requirement's scheduled date.
func (c *Client) Reschedule(ctx context.Context, employeeID string, level training.Level, key training.RequirementKey, date time.Time) (*models.Employee, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	body := scheduleBody{Requirement: string(key), Date: date.Format("2006-01-02")}
	return c.mutate(ctx, http.MethodPut, trainingPath(employeeID, level, "reschedule"), employeeID, body)
}

type completeBody struct {
	Requirement string `json:"requirement"`
}

// Complete marks a requirement complete. The server copies the scheduled
// date; no date is sent.
func (c *Client) Complete(ctx context.Context, employeeID string, level training.Level, key training.RequirementKey) (*models.Employee, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return c.mutate(ctx, http.MethodPost, trainingPath(employeeID, level, "complete"), employeeID, completeBody{Requirement: string(key)})
}

type notesBody struct {
	Notes *string `json:"notes,omitempty"`
}

// ApproveConference marks a completed conference approved.
func (c *Client) ApproveConference(ctx context.Context, employeeID string, level training.Level, notes *string) (*models.Employee, error) {
	return c.mutate(ctx, http.MethodPost, trainingPath(employeeID, level, "conference/approve"), employeeID, notesBody{Notes: notes})
}

// RejectConference marks a completed conference rejected.
func (c *Client) RejectConference(ctx context.Context, employeeID string, level training.Level, notes *string) (*models.Employee, error) {
	return c.mutate(ctx, http.MethodPost, trainingPath(employeeID, level, "conference/reject"), employeeID, notesBody{Notes: notes})
}

type updateNotesBody struct {
	Notes string `json:"notes"`
}

// UpdateNotes replaces a level's free-text notes.
func (c *Client) UpdateNotes(ctx context.Context, employeeID string, level training.Level, notes string) (*models.Employee, error) {
	return c.mutate(ctx, http.MethodPut, trainingPath(employeeID, level, "notes"), employeeID, updateNotesBody{Notes: notes})
}
