package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/coursemap/coursemap/internal/core"
	"github.com/coursemap/coursemap/internal/core/model"
	"github.com/coursemap/coursemap/internal/driver"
)

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Launch reports the stage a client session should start in.
func (s *Server) Launch(c *gin.Context) {
	courseID := c.Query("course_id")
	if courseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id is required"})
		return
	}

	stage, err := s.store.GetStage(c.Request.Context(), courseID)
	if err != nil {
		s.log.Error("failed to read course stage", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"course_id": courseID, "status": stage.String()})
}

func (s *Server) CourseStatus(c *gin.Context) {
	courseID := c.Query("course_id")
	if courseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id is required"})
		return
	}

	stage, err := s.store.GetStage(c.Request.Context(), courseID)
	if err != nil {
		s.log.Error("failed to read course stage", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": stage.String()})
}

type initializeCourseRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	Topics   string `json:"topics"`
}

// InitializeCourse accepts the instructor's topic list, marks the course
// Generating, and builds the graph in the background. The client polls
// course-status for the Generating -> Active transition.
func (s *Server) InitializeCourse(c *gin.Context) {
	var req initializeCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	topics := core.ParseTopics(req.Topics)
	if len(topics) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no topics provided"})
		return
	}

	stage, err := s.store.GetStage(c.Request.Context(), req.CourseID)
	if err != nil {
		s.log.Error("failed to read course stage", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read course"})
		return
	}
	if stage != model.StageNeedsInit {
		c.JSON(http.StatusConflict, gin.H{"error": "course already initialized"})
		return
	}

	if err := s.store.SetStage(c.Request.Context(), req.CourseID, model.StageGenerating); err != nil {
		s.log.Error("failed to mark course generating", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize course"})
		return
	}

	go s.generate(req.CourseID, topics)

	c.JSON(http.StatusOK, gin.H{"status": "complete"})
}

func (s *Server) generate(courseID string, topics []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log := s.log.With(zap.String("course_id", courseID))

	files, err := s.files.ListCourseFiles(ctx, courseID)
	if err != nil {
		// Build from topics alone; summaries will simply cite nothing.
		log.Warn("failed to list course files", zap.Error(err))
	}

	snap, err := s.builder.Build(ctx, topics, files)
	if err != nil {
		log.Error("graph generation failed", zap.Error(err))
		return
	}

	nodes, edges, data, err := model.EncodeSnapshot(snap)
	if err != nil {
		log.Error("failed to encode graph", zap.Error(err))
		return
	}

	doc := driver.GraphDoc{Nodes: nodes, Edges: edges, Data: data}
	if err := s.store.SaveGraph(ctx, courseID, doc); err != nil {
		log.Error("failed to save graph", zap.Error(err))
		return
	}
	if err := s.store.SetStage(ctx, courseID, model.StageActive); err != nil {
		log.Error("failed to activate course", zap.Error(err))
		return
	}

	s.cache.Delete(courseID)
	log.Info("course generated",
		zap.Int("topics", len(topics)),
		zap.Int("files", len(files)))
}

func (s *Server) GetGraph(c *gin.Context) {
	courseID := c.Query("course_id")
	if courseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id is required"})
		return
	}

	doc, err := s.graphDoc(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, driver.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no graph for course"})
			return
		}
		s.log.Error("failed to load graph", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load graph"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nodes": doc.Nodes,
		"edges": doc.Edges,
		"data":  doc.Data,
	})
}

// graphDoc serves the stored graph through a short TTL cache; the snapshot
// is immutable once a course is Active, so staleness is bounded by the
// regeneration path clearing the entry.
func (s *Server) graphDoc(ctx context.Context, courseID string) (driver.GraphDoc, error) {
	if cached, ok := s.cache.Get(courseID); ok {
		return cached.(driver.GraphDoc), nil
	}

	doc, err := s.store.GetGraph(ctx, courseID)
	if err != nil {
		return driver.GraphDoc{}, err
	}
	s.cache.Set(courseID, doc, gocache.DefaultExpiration)
	return doc, nil
}

type chatRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	Query    string `json:"query" binding:"required"`
}

func (s *Server) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doc, err := s.graphDoc(c.Request.Context(), req.CourseID)
	if err != nil {
		if errors.Is(err, driver.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no graph for course"})
			return
		}
		s.log.Error("failed to load graph", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load graph"})
		return
	}

	snap, err := model.DecodeSnapshot(doc.Nodes, doc.Edges, doc.Data)
	if err != nil {
		s.log.Error("stored graph is malformed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored graph is malformed"})
		return
	}

	answer, sources, err := s.answerer.Answer(c.Request.Context(), snap, req.Query)
	if err != nil {
		s.log.Error("failed to answer", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to answer"})
		return
	}
	if sources == nil {
		sources = []string{}
	}

	logID, err := s.analytics.LogChat(c.Request.Context(), req.CourseID, req.Query, answer)
	if err != nil {
		s.log.Warn("failed to log chat", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":  answer,
		"sources": sources,
		"log_id":  logID,
	})
}

type nodeClickRequest struct {
	CourseID  string `json:"course_id" binding:"required"`
	NodeID    string `json:"node_id" binding:"required"`
	NodeLabel string `json:"node_label"`
	NodeType  string `json:"node_type"`
}

func (s *Server) LogNodeClick(c *gin.Context) {
	var req nodeClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	id, err := s.analytics.LogNodeClick(c.Request.Context(), req.CourseID, req.NodeID, req.NodeLabel, req.NodeType)
	if err != nil {
		s.log.Error("failed to record node click", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record click"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "log_id": id})
}

// GetAnalytics serves the last generated usage report for a course.
func (s *Server) GetAnalytics(c *gin.Context) {
	courseID := c.Param("course_id")

	report, err := s.reporter.Get(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, driver.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no report for course"})
			return
		}
		s.log.Error("failed to load analytics report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

type runAnalyticsRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

// RunAnalytics regenerates a course's usage report from the recorded chat
// events and returns it.
func (s *Server) RunAnalytics(c *gin.Context) {
	var req runAnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	report, err := s.reporter.Run(c.Request.Context(), req.CourseID)
	if err != nil {
		s.log.Error("failed to run analytics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to run analytics"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// DownloadSource resolves a cited course material to the LMS's authenticated
// download link.
func (s *Server) DownloadSource(c *gin.Context) {
	courseID := c.Query("course_id")
	filename := c.Query("filename")
	if courseID == "" || filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id and filename are required"})
		return
	}

	files, err := s.files.ListCourseFiles(c.Request.Context(), courseID)
	if err != nil {
		s.log.Error("failed to list course files", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to reach course files"})
		return
	}

	for _, f := range files {
		if f.DisplayName == filename {
			c.JSON(http.StatusOK, gin.H{"download_url": f.URL})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "no such course file"})
}

type rateAnswerRequest struct {
	LogDocID string `json:"log_doc_id" binding:"required"`
	Rating   string `json:"rating" binding:"required"`
}

func (s *Server) RateAnswer(c *gin.Context) {
	var req rateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := s.analytics.RateAnswer(c.Request.Context(), req.LogDocID, req.Rating); err != nil {
		s.log.Error("failed to record rating", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
