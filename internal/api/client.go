// Package api: клиент внешнего read-only API каталога (GET /brainrot, GET /brainrot/{id}).
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"BrainrotDex/internal/model"
)

var (
	// ErrNotFound: внешний API вернул 404 на запрос одной записи.
	ErrNotFound = errors.New("remote item not found")
	// ErrUnavailable: API не ответил, ответил не 2xx или прислал невалидный JSON.
	ErrUnavailable = errors.New("remote api unavailable")
)

// StatusError: ответ не 2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote api: status %d", e.Code)
	}
	return fmt.Sprintf("remote api: status %d: %s", e.Code, e.Body)
}

// Client ходит во внешний API по baseURL.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиента. timeout == 0: без таймаута (остаётся только контекст запроса).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL: адрес API, с которым работает клиент.
func (c *Client) BaseURL() string { return c.baseURL }

// List возвращает все записи внешнего API.
func (c *Client) List(ctx context.Context) ([]model.RemoteItem, error) {
	var items []model.RemoteItem
	if err := c.getJSON(ctx, "/brainrot", &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.RemoteItem{}
	}
	return items, nil
}

// Get возвращает одну запись. 404 → ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (model.RemoteItem, error) {
	var item model.RemoteItem
	err := c.getJSON(ctx, "/brainrot/"+url.PathEscape(id), &item)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return model.RemoteItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return model.RemoteItem{}, err
	}
	return item, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %w", ErrUnavailable, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))})
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrUnavailable, err)
	}
	return nil
}
