// Package api is the typed client for the coursemap backend. It covers every
// endpoint the session controller, graph store, and chat session consume.
package api

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/coursemap/coursemap/internal/core/model"
)

type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second)
	return &Client{http: c}
}

type initializeRequest struct {
	CourseID string `json:"course_id"`
	Topics   string `json:"topics"`
}

type initializeResponse struct {
	Status string `json:"status"`
}

// InitializeCourse submits the instructor's topic list and returns the
// backend's acceptance status ("complete" once generation has started).
func (c *Client) InitializeCourse(ctx context.Context, courseID, topics string) (string, error) {
	var out initializeResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(initializeRequest{CourseID: courseID, Topics: topics}).
		SetResult(&out).
		Post("/api/initialize-course")
	if err != nil {
		return "", fmt.Errorf("initialize course: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("initialize course: %s", res.Status())
	}
	return out.Status, nil
}

type statusResponse struct {
	Status string `json:"status"`
}

func (c *Client) CourseStatus(ctx context.Context, courseID string) (model.Stage, error) {
	var out statusResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("course_id", courseID).
		SetResult(&out).
		Get("/api/course-status")
	if err != nil {
		return "", fmt.Errorf("course status: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("course status: %s", res.Status())
	}
	return model.ParseStage(out.Status)
}

// Launch reports the stage a new session should start in.
func (c *Client) Launch(ctx context.Context, courseID string) (model.Stage, error) {
	var out statusResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("course_id", courseID).
		SetResult(&out).
		Get("/launch")
	if err != nil {
		return "", fmt.Errorf("launch: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("launch: %s", res.Status())
	}
	return model.ParseStage(out.Status)
}

// GraphResponse carries the three independently encoded graph fields.
type GraphResponse struct {
	Nodes string `json:"nodes"`
	Edges string `json:"edges"`
	Data  string `json:"data"`
}

func (c *Client) GetGraph(ctx context.Context, courseID string) (*GraphResponse, error) {
	var out GraphResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("course_id", courseID).
		SetResult(&out).
		Get("/api/get-graph")
	if err != nil {
		return nil, fmt.Errorf("get graph: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("get graph: %s", res.Status())
	}
	return &out, nil
}

type chatRequest struct {
	CourseID string `json:"course_id"`
	Query    string `json:"query"`
}

type chatResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

func (c *Client) Chat(ctx context.Context, courseID, query string) (string, []string, error) {
	var out chatResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{CourseID: courseID, Query: query}).
		SetResult(&out).
		Post("/api/chat")
	if err != nil {
		return "", nil, fmt.Errorf("chat: %w", err)
	}
	if res.IsError() {
		return "", nil, fmt.Errorf("chat: %s", res.Status())
	}
	return out.Answer, out.Sources, nil
}

type nodeClickRequest struct {
	CourseID  string `json:"course_id"`
	NodeID    string `json:"node_id"`
	NodeLabel string `json:"node_label"`
	NodeType  string `json:"node_type"`
}

// LogNodeClick is fire-and-forget analytics; callers typically ignore the
// error beyond logging it.
func (c *Client) LogNodeClick(ctx context.Context, courseID, nodeID, nodeLabel, nodeType string) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(nodeClickRequest{CourseID: courseID, NodeID: nodeID, NodeLabel: nodeLabel, NodeType: nodeType}).
		Post("/api/log-node-click")
	if err != nil {
		return fmt.Errorf("log node click: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("log node click: %s", res.Status())
	}
	return nil
}

type rateAnswerRequest struct {
	LogDocID string `json:"log_doc_id"`
	Rating   string `json:"rating"`
}

func (c *Client) RateAnswer(ctx context.Context, logDocID, rating string) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(rateAnswerRequest{LogDocID: logDocID, Rating: rating}).
		Post("/api/rate-answer")
	if err != nil {
		return fmt.Errorf("rate answer: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("rate answer: %s", res.Status())
	}
	return nil
}

func (c *Client) Close() error {
	return c.http.Close()
}
