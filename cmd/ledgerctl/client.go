package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// apiClient issues JSON requests against a sulfurwatch server and copies
// the indented response body to out.
type apiClient struct {
	baseURL    string
	token      string
	adminToken string
	http       *http.Client
}

// apiError is the server's JSON error envelope plus the HTTP status.
type apiError struct {
	Status      int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *apiError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Code)
	}
	return fmt.Sprintf("server returned %d: %s: %s", e.Status, e.Code, e.Description)
}

func newAPIClient(baseURL, token, adminToken string) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		adminToken: adminToken,
		http:       &http.Client{Timeout: defaultTimeout},
	}
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body any, out io.Writer) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ledgerctl/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.adminToken != "" {
		req.Header.Set("X-Admin-Token", c.adminToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &apiError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(raw, apiErr); jsonErr != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		_, err = out.Write(raw)
		return err
	}
	pretty.WriteByte('\n')
	_, err = pretty.WriteTo(out)
	return err
}
