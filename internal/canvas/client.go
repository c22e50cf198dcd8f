// Package canvas lists course materials from the LMS REST API.
package canvas

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

// File is one course file as the LMS reports it. URL is the authenticated
// download link, HTMLURL the human-facing page.
type File struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
	HTMLURL     string `json:"html_url"`
}

type Client struct {
	http *resty.Client
}

func NewClient(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(30 * time.Second)
	return &Client{http: c}
}

func (c *Client) ListCourseFiles(ctx context.Context, courseID string) ([]File, error) {
	var files []File
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&files).
		Get(fmt.Sprintf("/courses/%s/files", courseID))
	if err != nil {
		return nil, fmt.Errorf("canvas: list files: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("canvas: list files: %s", res.Status())
	}
	return files, nil
}

func (c *Client) Close() error {
	return c.http.Close()
}
