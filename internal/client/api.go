package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
)

const availabilityPath = "/api/v1/user/availability"

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Code)
}

// IsCode reports whether err is an APIError carrying code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// BlockRequest blocks a whole day when StartTime and EndTime are empty.
type BlockRequest struct {
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

type UnblockRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// Session is what login leaves behind in Storage.
type Session struct {
	UserID string
	Role   string
	Token  string
}

// API talks to the availability REST endpoints. The bearer token is read from
// Storage on every request.
type API struct {
	baseURL string
	http    *http.Client
	storage Storage
}

type Option func(*API)

func WithHTTPClient(c *http.Client) Option {
	return func(a *API) { a.http = c }
}

func NewAPI(baseURL string, storage Storage, opts ...Option) *API {
	a := &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		storage: storage,
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := a.storage.Get(KeyToken)
	switch {
	case err == nil:
		req.Header.Set("Authorization", "Bearer "+token)
	case !errors.Is(err, ErrKeyNotFound):
		return fmt.Errorf("read token: %w", err)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Code    string `json:"error_code"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Message
		}
		if apiErr.Code == "" {
			apiErr.Code = strings.ToLower(strings.ReplaceAll(http.StatusText(resp.StatusCode), " ", "_"))
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ======================================================
// Auth
// ======================================================

func (a *API) Login(ctx context.Context, email, password string) (Session, error) {
	var resp struct {
		User struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	}

	body := map[string]string{"email": email, "password": password}
	if err := a.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return Session{}, err
	}

	s := Session{UserID: resp.User.ID, Role: resp.User.Role, Token: resp.Token}
	for key, value := range map[string]string{
		KeyToken:    s.Token,
		KeyUserID:   s.UserID,
		KeyUserRole: s.Role,
	} {
		if err := a.storage.Set(key, value); err != nil {
			return Session{}, err
		}
	}
	return s, nil
}

func (a *API) Logout() error {
	for _, key := range []string{KeyToken, KeyUserID, KeyUserRole} {
		if err := a.storage.Remove(key); err != nil {
			return err
		}
	}
	return nil
}

// ======================================================
// Reads
// ======================================================

func (a *API) Patterns(ctx context.Context, expertID string) ([]domain.Pattern, error) {
	var out []domain.Pattern
	if err := a.do(ctx, http.MethodGet, availabilityPath+"/"+url.PathEscape(expertID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) Monthly(ctx context.Context, expertID string, month, year int) (domain.MonthlyAvailability, error) {
	q := url.Values{}
	q.Set("month", strconv.Itoa(month))
	q.Set("year", strconv.Itoa(year))

	out := domain.MonthlyAvailability{}
	path := availabilityPath + "/" + url.PathEscape(expertID) + "/monthly?" + q.Encode()
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) DaySlots(ctx context.Context, expertID, date string) ([]domain.TimeSlot, error) {
	q := url.Values{}
	q.Set("date", date)

	var out []domain.TimeSlot
	path := availabilityPath + "/" + url.PathEscape(expertID) + "/slots?" + q.Encode()
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Date == "" {
			out[i].Date = date
		}
		out[i] = out[i].Normalize()
	}
	return out, nil
}

// ======================================================
// Mutations
// ======================================================

type patternBody struct {
	ID        string `json:"id,omitempty"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func toBodies(patterns []domain.Pattern, withID bool) []patternBody {
	out := make([]patternBody, 0, len(patterns))
	for _, p := range patterns {
		b := patternBody{DayOfWeek: p.DayOfWeek, StartTime: p.StartTime, EndTime: p.EndTime}
		if withID {
			b.ID = p.ID
		}
		out = append(out, b)
	}
	return out
}

func (a *API) CreatePatterns(ctx context.Context, date string, patterns []domain.Pattern) ([]domain.Pattern, error) {
	var out []domain.Pattern
	body := map[string]any{"availabilities": toBodies(patterns, false)}
	if date != "" {
		body["date"] = date
	}
	if err := a.do(ctx, http.MethodPost, availabilityPath, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) UpdatePatterns(ctx context.Context, patterns []domain.Pattern) ([]domain.Pattern, error) {
	var out []domain.Pattern
	if err := a.do(ctx, http.MethodPatch, availabilityPath, toBodies(patterns, true), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) DeletePatterns(ctx context.Context, ids []string) error {
	return a.do(ctx, http.MethodDelete, availabilityPath, map[string]any{"ids": ids}, nil)
}

func (a *API) Block(ctx context.Context, req BlockRequest) error {
	return a.do(ctx, http.MethodPatch, availabilityPath+"/block", req, nil)
}

func (a *API) Unblock(ctx context.Context, req UnblockRequest) error {
	return a.do(ctx, http.MethodPatch, availabilityPath+"/unblock", req, nil)
}

var _ Backend = (*API)(nil)
