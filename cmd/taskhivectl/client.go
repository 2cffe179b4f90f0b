package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type taskhiveClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newClient() *taskhiveClient {
	return &taskhiveClient{
		baseURL: serverURL,
		token:   resolvedToken(),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *taskhiveClient) do(method, path string, body any, v any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if v == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// getJSON performs a GET request and decodes the response.
func (c *taskhiveClient) getJSON(path string, v any) error {
	return c.do(http.MethodGet, path, nil, v)
}

// postJSON performs a POST request with a JSON body and decodes the response.
func (c *taskhiveClient) postJSON(path string, body any, v any) error {
	return c.do(http.MethodPost, path, body, v)
}

// putJSON performs a PUT request with a JSON body and decodes the response.
func (c *taskhiveClient) putJSON(path string, body any, v any) error {
	return c.do(http.MethodPut, path, body, v)
}

// delete performs a DELETE request.
func (c *taskhiveClient) delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil)
}
