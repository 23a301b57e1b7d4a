package client

// http_client.go = bookhub API client used by every CLI command.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookhub/cmd/cli/dto"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Detail, e.StatusCode)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	username   string
	password   string
}

// NewHTTPClient builds a client. A zero timeout waits indefinitely, which
// generate-summary may need while the model runs.
func NewHTTPClient(apiURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetCredentials sets the basic auth pair sent with every request.
func (c *HTTPClient) SetCredentials(username, password string) {
	c.username = username
	c.password = password
}

func (c *HTTPClient) ListBooks() ([]dto.BookResponse, error) {
	var out []dto.BookResponse
	err := c.do(http.MethodGet, "/books", nil, &out)
	return out, err
}

func (c *HTTPClient) GetBook(id int64) (*dto.BookResponse, error) {
	var out dto.BookResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/books/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateBook(req *dto.CreateBookRequest) (*dto.BookResponse, error) {
	var out dto.BookResponse
	if err := c.do(http.MethodPost, "/books", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBook sends only the given fields; a nil value clears the field.
func (c *HTTPClient) UpdateBook(id int64, fields map[string]interface{}) (*dto.BookResponse, error) {
	var out dto.BookResponse
	if err := c.do(http.MethodPut, fmt.Sprintf("/books/%d", id), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteBook(id int64) (string, error) {
	var out dto.DetailResponse
	if err := c.do(http.MethodDelete, fmt.Sprintf("/books/%d", id), nil, &out); err != nil {
		return "", err
	}
	return out.Detail, nil
}

func (c *HTTPClient) ListReviews(bookID int64) ([]dto.ReviewResponse, error) {
	var out []dto.ReviewResponse
	err := c.do(http.MethodGet, fmt.Sprintf("/books/%d/reviews", bookID), nil, &out)
	return out, err
}

func (c *HTTPClient) AddReview(bookID int64, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	var out dto.ReviewResponse
	if err := c.do(http.MethodPost, fmt.Sprintf("/books/%d/reviews", bookID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetBookSummary(bookID int64) (*dto.BookSummaryResponse, error) {
	var out dto.BookSummaryResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/books/%d/summary", bookID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GenerateSummary(bookID int64) (string, error) {
	var out dto.GenerateSummaryResponse
	if err := c.do(http.MethodPost, "/generate-summary", dto.GenerateSummaryRequest{BookID: bookID}, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

// Recommend lists books of genre, or every book when genre is empty.
func (c *HTTPClient) Recommend(genre string) ([]dto.BookResponse, error) {
	path := "/recommendations"
	if genre != "" {
		path += "?genre=" + url.QueryEscape(genre)
	}
	var out []dto.BookResponse
	err := c.do(http.MethodGet, path, nil, &out)
	return out, err
}

func (c *HTTPClient) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close() // Ensure the response body is closed

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var errResp dto.DetailResponse
		_ = json.NewDecoder(response.Body).Decode(&errResp)
		return &APIError{StatusCode: response.StatusCode, Detail: errResp.Detail}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(out)
}
