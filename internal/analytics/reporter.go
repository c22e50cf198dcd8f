package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coursemap/coursemap/internal/core/common"
	"github.com/coursemap/coursemap/internal/driver"
	"github.com/coursemap/coursemap/internal/llm"
)

// ReportStore is the slice of the course store the reporter reads and writes.
type ReportStore interface {
	ListEvents(ctx context.Context, courseID, kind string) ([]driver.Event, error)
	SaveReport(ctx context.Context, courseID, report string) error
	GetReport(ctx context.Context, courseID string) (string, error)
}

// Cluster is one theme of student questions in a report.
type Cluster struct {
	Count   int      `json:"count"`
	Queries []string `json:"queries"`
}

// Report summarizes a course's chat usage: every logged question, grouped
// into labeled themes.
type Report struct {
	Status       string             `json:"status"`
	CourseID     string             `json:"course_id"`
	GeneratedAt  time.Time          `json:"generated_at"`
	TotalQueries int                `json:"total_queries"`
	NumClusters  int                `json:"num_clusters"`
	Clusters     map[string]Cluster `json:"clusters"`
}

// Reporter builds usage reports from the recorded chat events and persists
// the latest one per course.
type Reporter struct {
	store ReportStore
	gen   llm.Generator
	log   *zap.Logger
}

func NewReporter(store ReportStore, gen llm.Generator, log *zap.Logger) *Reporter {
	return &Reporter{store: store, gen: gen, log: log}
}

// Run regenerates the report for a course and saves it, replacing any
// previous one. A course with no chat activity yields a "no_data" report.
func (r *Reporter) Run(ctx context.Context, courseID string) (*Report, error) {
	events, err := r.store.ListEvents(ctx, courseID, "chat")
	if err != nil {
		return nil, err
	}

	queries := make([]string, 0, len(events))
	for _, ev := range events {
		if q, ok := ev.Fields["query"].(string); ok && q != "" {
			queries = append(queries, q)
		}
	}

	report := &Report{
		Status:       "complete",
		CourseID:     courseID,
		GeneratedAt:  time.Now().UTC(),
		TotalQueries: len(queries),
		Clusters:     map[string]Cluster{},
	}
	if len(queries) == 0 {
		report.Status = "no_data"
	} else {
		report.Clusters = r.clusterQueries(ctx, queries)
		report.NumClusters = len(report.Clusters)
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	if err := r.store.SaveReport(ctx, courseID, string(raw)); err != nil {
		return nil, err
	}

	r.log.Info("analytics report generated",
		zap.String("course_id", courseID),
		zap.Int("queries", report.TotalQueries),
		zap.Int("clusters", report.NumClusters))
	return report, nil
}

// Get returns the last saved report, driver.ErrNotFound when none exists.
func (r *Reporter) Get(ctx context.Context, courseID string) (*Report, error) {
	raw, err := r.store.GetReport(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var report Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

type clusterPayload struct {
	Clusters map[string][]string `json:"clusters"`
}

// clusterQueries groups the queries into labeled themes. Any model failure
// degrades to a single catch-all cluster; a report is always produced.
func (r *Reporter) clusterQueries(ctx context.Context, queries []string) map[string]Cluster {
	raw, err := r.gen.Generate(ctx, clusterPrompt(queries))
	if err != nil {
		r.log.Warn("query clustering failed", zap.Error(err))
		return map[string]Cluster{"All Questions": {Count: len(queries), Queries: queries}}
	}

	parsed, err := common.ParseJSON[clusterPayload](raw)
	if err != nil || len(parsed.Clusters) == 0 {
		r.log.Warn("unparseable clustering reply", zap.Error(err))
		return map[string]Cluster{"All Questions": {Count: len(queries), Queries: queries}}
	}

	clusters := make(map[string]Cluster, len(parsed.Clusters))
	for label, qs := range parsed.Clusters {
		clusters[label] = Cluster{Count: len(qs), Queries: qs}
	}
	return clusters
}

func clusterPrompt(queries []string) string {
	var sb strings.Builder
	sb.WriteString("You are grouping student questions from a course QA chat into themes.\n")
	sb.WriteString("Questions:\n")
	for _, q := range queries {
		sb.WriteString("- " + q + "\n")
	}
	sb.WriteString("\nReply with a JSON object: {\"clusters\": {\"short theme label\": [\"the questions in that theme\"]}}\n")
	return sb.String()
}
