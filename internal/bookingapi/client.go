// Package bookingapi is a typed HTTP client for the booking REST API. The
// Telegram front-end runs as a separate process and talks to the backend
// through this client using a staff token.
package bookingapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client calls the booking API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	redis    *redis.Client
	cacheTTL time.Duration
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UseRedisCache configures optional Redis caching for catalog reads.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// Specialist mirrors the API's specialist payload.
type Specialist struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	City           string `json:"city"`
}

// Offering mirrors the API's offering payload.
type Offering struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	SpecialistID    string  `json:"specialist_id"`
}

// Slot is one free booking window.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Clientele mirrors the API's client payload.
type Clientele struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	TelegramID *string `json:"telegram_id"`
}

// Appointment mirrors the API's appointment payload.
type Appointment struct {
	ID             string `json:"id"`
	ClientName     string `json:"client_name"`
	SpecialistName string `json:"specialist_name"`
	OfferingName   string `json:"offering_name"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Status         string `json:"status"`
}

type page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// SearchSpecialists lists active specialists, optionally narrowed by free
// text, city or category.
func (c *Client) SearchSpecialists(ctx context.Context, search, city, categoryID string) ([]Specialist, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if city != "" {
		q.Set("city", city)
	}
	if categoryID != "" {
		q.Set("category_id", categoryID)
	}
	endpoint := c.baseURL + "/v1/specialists?" + q.Encode()
	cacheKey := "specialists:" + q.Encode()

	var resp page[Specialist]
	if c.readCache(ctx, cacheKey, &resp) {
		return resp.Items, nil
	}
	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, resp)
	return resp.Items, nil
}

// ListOfferings lists the active offerings of one specialist.
func (c *Client) ListOfferings(ctx context.Context, specialistID string) ([]Offering, error) {
	endpoint := fmt.Sprintf("%s/v1/specialists/%s/services", c.baseURL, url.PathEscape(specialistID))
	cacheKey := "offerings:" + specialistID

	var resp page[Offering]
	if c.readCache(ctx, cacheKey, &resp) {
		return resp.Items, nil
	}
	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, resp)
	return resp.Items, nil
}

// AvailableSlots lists the free windows of a specialist on a date
// (YYYY-MM-DD). Never cached: slots go stale the moment someone books.
func (c *Client) AvailableSlots(ctx context.Context, specialistID, date string) ([]Slot, error) {
	endpoint := fmt.Sprintf("%s/v1/specialists/%s/available-slots?date=%s",
		c.baseURL, url.PathEscape(specialistID), url.QueryEscape(date))

	var resp struct {
		Date  string `json:"date"`
		Slots []Slot `json:"slots"`
	}
	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Slots, nil
}

// ClientByTelegramID finds the client profile linked to a Telegram chat.
func (c *Client) ClientByTelegramID(ctx context.Context, telegramID string) (*Clientele, error) {
	endpoint := c.baseURL + "/v1/clients?telegram_id=" + url.QueryEscape(telegramID)

	var resp page[Clientele]
	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("no client for telegram id %s", telegramID)
	}
	return &resp.Items[0], nil
}

// CreateClientRequest is the payload for registering a client profile.
type CreateClientRequest struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	City       string  `json:"city,omitempty"`
	TelegramID *string `json:"telegram_id,omitempty"`
}

func (c *Client) CreateClient(ctx context.Context, req CreateClientRequest) (*Clientele, error) {
	var resp Clientele
	if err := c.doPost(ctx, c.baseURL+"/v1/clients", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateAppointmentRequest is the payload for booking an appointment. EndTime
// may be empty; the backend derives it from the offering's duration.
type CreateAppointmentRequest struct {
	ClientID     string `json:"client_id"`
	SpecialistID string `json:"specialist_id"`
	OfferingID   string `json:"offering_id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	var resp Appointment
	if err := c.doPost(ctx, c.baseURL+"/v1/appointments", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAppointments lists a client's appointments, newest day last.
func (c *Client) ListAppointments(ctx context.Context, clientID string) ([]Appointment, error) {
	endpoint := c.baseURL + "/v1/appointments?client_id=" + url.QueryEscape(clientID)

	var resp page[Appointment]
	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ChangeStatus runs one of the status transitions: confirm, cancel, complete.
func (c *Client) ChangeStatus(ctx context.Context, appointmentID, action string) (*Appointment, error) {
	endpoint := fmt.Sprintf("%s/v1/appointments/%s/%s",
		c.baseURL, url.PathEscape(appointmentID), url.PathEscape(action))

	var resp Appointment
	if err := c.doPost(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HealthCheck checks whether the backend is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	c.addHeaders(req)
	return c.do(req, out)
}

func (c *Client) doPost(ctx context.Context, endpoint string, body, out any) error {
	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.addHeaders(req)
	return c.do(req, out)
}

// APIError carries the backend's status code and error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) addHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
