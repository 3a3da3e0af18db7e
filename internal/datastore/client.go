package datastore

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"

	"github.com/go-resty/resty/v2"
)

// DefaultDatabase is the remote database name used when none is configured.
const DefaultDatabase = "keepers"

// DatasetteClient implements the Store interface for remote Datasette instances
type DatasetteClient struct {
	baseURL  string
	apiToken string
	client   *resty.Client
}

// NewDatasetteClient creates a new DatasetteClient instance
func NewDatasetteClient(baseURL, apiToken string) *DatasetteClient {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiToken != "" {
		client.SetAuthToken(apiToken)
	}
	return &DatasetteClient{
		baseURL:  baseURL,
		apiToken: apiToken,
		client:   client,
	}
}

// Connect verifies the connection to the Datasette instance
func (c *DatasetteClient) Connect() error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL: %q", c.baseURL)
	}
	return nil
}

// CreateTable is a no-op for remote Datasette as tables are created by the create API
func (c *DatasetteClient) CreateTable(schema string) error {
	return nil
}

// Truncate drops the remote table. A missing table is not an error.
func (c *DatasetteClient) Truncate(database string, table string) error {
	endpoint, err := c.endpoint(database, table, "-/drop")
	if err != nil {
		return err
	}

	resp, err := c.client.R().
		SetBody(map[string]any{"confirm": true}).
		Post(endpoint)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		slog.Debug("Remote table does not exist yet", "table", table)
		return nil
	}
	return checkResponse(resp)
}

// BatchInsert sends records to the Datasette create API, which creates the
// table on first use and appends to it afterwards.
func (c *DatasetteClient) BatchInsert(database string, table string, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}

	endpoint, err := c.endpoint(database, "-/create")
	if err != nil {
		return err
	}

	resp, err := c.client.R().
		SetBody(map[string]any{
			"table": table,
			"rows":  records,
		}).
		Post(endpoint)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return checkResponse(resp)
}

// Close is a no-op for the HTTP client
func (c *DatasetteClient) Close() error {
	return nil
}

func (c *DatasetteClient) endpoint(database string, parts ...string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if database == "" {
		database = DefaultDatabase
	}
	u.Path = path.Join(append([]string{u.Path, database}, parts...)...)
	return u.String(), nil
}

func checkResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	if body := resp.String(); body != "" {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode(), body)
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode())
}
