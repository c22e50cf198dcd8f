// Package server exposes the course backend over HTTP: launch and status,
// course initialization, the generated graph, the QA chat, and analytics.
package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/coursemap/coursemap/internal/analytics"
	"github.com/coursemap/coursemap/internal/canvas"
	"github.com/coursemap/coursemap/internal/core"
	"github.com/coursemap/coursemap/internal/driver"
)

// FileLister is the LMS surface the server needs during generation.
type FileLister interface {
	ListCourseFiles(ctx context.Context, courseID string) ([]canvas.File, error)
}

type Server struct {
	store     driver.CourseStore
	builder   *core.Builder
	answerer  *core.Answerer
	files     FileLister
	analytics *analytics.Recorder
	reporter  *analytics.Reporter
	cache     *gocache.Cache
	log       *zap.Logger
}

func New(store driver.CourseStore, builder *core.Builder, answerer *core.Answerer, files FileLister, rec *analytics.Recorder, reporter *analytics.Reporter, log *zap.Logger) *Server {
	return &Server{
		store:     store,
		builder:   builder,
		answerer:  answerer,
		files:     files,
		analytics: rec,
		reporter:  reporter,
		cache:     gocache.New(5*time.Minute, 10*time.Minute),
		log:       log,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.GET("/launch", s.Launch)
	r.POST("/api/initialize-course", s.InitializeCourse)
	r.GET("/api/course-status", s.CourseStatus)
	r.GET("/api/get-graph", s.GetGraph)
	r.POST("/api/chat", s.Chat)
	r.POST("/api/log-node-click", s.LogNodeClick)
	r.POST("/api/rate-answer", s.RateAnswer)
	r.GET("/api/analytics/:course_id", s.GetAnalytics)
	r.POST("/api/analytics/run", s.RunAnalytics)
	r.GET("/api/download-source", s.DownloadSource)

	return r
}
