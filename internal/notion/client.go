package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"notion-mirror/internal/config"
)

const (
	apiBaseURL = "https://api.notion.com/v1"
	apiVersion = "2022-06-28"
)

var (
	// ErrRemoteUnavailable marks a failed call to the Notion API.
	ErrRemoteUnavailable = errors.New("notion api unavailable")
	// ErrShapeInvalid marks a response missing its expected structure.
	ErrShapeInvalid = errors.New("notion response shape invalid")
)

// Client talks to the Notion HTTP API. It provides the metadata, query and
// block capabilities consumed by the schema and sync features.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		token:   cfg.NotionToken,
		baseURL: apiBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RetrieveDatabase fetches the current property definitions of a database.
func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error) {
	var db Database
	path := fmt.Sprintf("/databases/%s", databaseID)
	if err := c.do(ctx, http.MethodGet, path, nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// QueryDatabase fetches one page of records, always sorted by edit time
// ascending so watermarks computed from the last record are valid bounds.
func (c *Client) QueryDatabase(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	body := map[string]interface{}{
		"page_size": req.PageSize,
		"sorts": []map[string]string{
			{"timestamp": "last_edited_time", "direction": "ascending"},
		},
	}
	if req.Cursor != "" {
		body["start_cursor"] = req.Cursor
	} else if req.EditedAfter != nil {
		body["filter"] = map[string]interface{}{
			"timestamp": "last_edited_time",
			"last_edited_time": map[string]string{
				"after": req.EditedAfter.UTC().Format(time.RFC3339),
			},
		}
	}

	var resp struct {
		Results    []Page  `json:"results"`
		HasMore    bool    `json:"has_more"`
		NextCursor *string `json:"next_cursor"`
	}
	path := fmt.Sprintf("/databases/%s/query", req.DatabaseID)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}

	result := &QueryResult{
		Pages:   resp.Results,
		HasMore: resp.HasMore,
	}
	if resp.NextCursor != nil {
		result.NextCursor = *resp.NextCursor
	}
	return result, nil
}

// BlockChildren lists one page of a block's direct children.
func (c *Client) BlockChildren(ctx context.Context, blockID, cursor string) (*BlockList, error) {
	query := url.Values{"page_size": {"100"}}
	if cursor != "" {
		query.Set("start_cursor", cursor)
	}

	var resp struct {
		Results    []Block `json:"results"`
		HasMore    bool    `json:"has_more"`
		NextCursor *string `json:"next_cursor"`
	}
	path := fmt.Sprintf("/blocks/%s/children?%s", blockID, query.Encode())
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	list := &BlockList{
		Blocks:  resp.Results,
		HasMore: resp.HasMore,
	}
	if resp.NextCursor != nil {
		list.NextCursor = *resp.NextCursor
	}
	return list, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrRemoteUnavailable, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrRemoteUnavailable, method, path, resp.StatusCode, detail)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrShapeInvalid, err)
	}
	return nil
}
