package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var errNoCover = errors.New("no cover found")

// OpenLibraryClient finds cover images through the Open Library search API.
type OpenLibraryClient struct {
	BaseURL string
	Client  *http.Client
	Retry   int
}

func NewOpenLibraryClient(baseURL string, retry int, httpClient *http.Client) *OpenLibraryClient {
	if baseURL == "" {
		baseURL = "https://openlibrary.org"
	}
	if retry < 0 {
		retry = 0
	}
	return &OpenLibraryClient{
		BaseURL: baseURL,
		Client:  httpClient,
		Retry:   retry,
	}
}

func (c *OpenLibraryClient) FindCover(ctx context.Context, title, author string) (string, error) {
	q := url.Values{}
	q.Set("title", title)
	if author != "" {
		q.Set("author", author)
	}
	q.Set("fields", "cover_i")
	q.Set("limit", "5")
	u := fmt.Sprintf("%s/search.json?%s", c.BaseURL, q.Encode())

	var lastErr error
	attempts := c.Retry + 1
	for i := 0; i < attempts; i++ {
		cover, err := c.fetchOnce(ctx, u)
		if err == nil {
			return cover, nil
		}
		// a miss is final
		if errors.Is(err, errNoCover) {
			return "", err
		}
		lastErr = err
		if i < attempts-1 {
			select {
			case <-time.After(time.Duration(150*(i+1)) * time.Millisecond):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", lastErr
}

func (c *OpenLibraryClient) fetchOnce(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", errNoCover
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("openlibrary: status %d: %s", resp.StatusCode, string(b))
	}

	var sr openLibSearch
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", err
	}
	for _, d := range sr.Docs {
		if d.CoverID != nil && *d.CoverID > 0 {
			return coverURL(*d.CoverID), nil
		}
	}
	return "", errNoCover
}

type openLibSearch struct {
	Docs []openLibDoc `json:"docs"`
}

type openLibDoc struct {
	CoverID *int `json:"cover_i"`
}

func coverURL(id int) string {
	return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", id)
}
