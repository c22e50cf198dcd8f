// Package session drives a course through its client-side lifecycle:
// exclusive stage panels, the initialization submit, the completion-polling
// loop, and the Active-stage wiring of graph and chat.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/coursemap/coursemap/internal/chat"
	"github.com/coursemap/coursemap/internal/core/model"
	"github.com/coursemap/coursemap/internal/graph"
)

// Panel is one of the four stage views. Exactly one is shown at a time.
type Panel interface {
	Show()
	Hide()
}

type Panels struct {
	Init     Panel
	NotReady Panel
	Loading  Panel
	Main     Panel
}

func (p Panels) all() []Panel {
	return []Panel{p.Init, p.NotReady, p.Loading, p.Main}
}

func (p Panels) forStage(stage model.Stage) Panel {
	switch stage {
	case model.StageNeedsInit:
		return p.Init
	case model.StageNotReady:
		return p.NotReady
	case model.StageGenerating:
		return p.Loading
	default:
		return p.Main
	}
}

// Backend is the slice of the API the controller itself calls.
type Backend interface {
	InitializeCourse(ctx context.Context, courseID, topics string) (string, error)
	CourseStatus(ctx context.Context, courseID string) (model.Stage, error)
}

// ClickLogger records node selections; optional, fire-and-forget.
type ClickLogger interface {
	LogNodeClick(ctx context.Context, courseID, nodeID, nodeLabel, nodeType string) error
}

type Config struct {
	CourseID string
	// PollInterval is the delay between status polls while Generating.
	PollInterval time.Duration
	// MaxPollDuration bounds the polling loop; an unbounded loop would be a
	// slow resource leak when generation never completes.
	MaxPollDuration time.Duration
}

type Deps struct {
	Backend  Backend
	Store    *graph.Store
	Renderer *graph.Renderer
	Detail   *graph.DetailPanel
	Chat     *chat.Session
	Clicks   ClickLogger
}

type Controller struct {
	cfg     Config
	deps    Deps
	panels  Panels
	log     *zap.Logger
	onError func(msg string)

	mu         sync.Mutex
	stage      model.Stage
	graphReady bool
	cancelPoll context.CancelFunc
	pollDone   chan struct{}
}

func NewController(cfg Config, deps Deps, panels Panels, log *zap.Logger) *Controller {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}
	if cfg.MaxPollDuration <= 0 {
		cfg.MaxPollDuration = 30 * time.Minute
	}
	return &Controller{cfg: cfg, deps: deps, panels: panels, log: log}
}

// SetOnError registers the user-visible error surface (an alert, a status
// line). Errors are logged either way.
func (c *Controller) SetOnError(fn func(msg string)) {
	c.onError = fn
}

func (c *Controller) Stage() model.Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

// GraphReady reports whether the Active-stage graph load succeeded. Chat is
// usable even when it did not.
func (c *Controller) GraphReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.graphReady
}

// Enter moves the session to the given stage: it makes that stage's panel
// the only visible one and runs the stage's entry action.
func (c *Controller) Enter(ctx context.Context, stage model.Stage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enterLocked(ctx, stage)
}

func (c *Controller) enterLocked(ctx context.Context, stage model.Stage) {
	c.stage = stage
	for _, p := range c.panels.all() {
		p.Hide()
	}
	c.panels.forStage(stage).Show()
	c.log.Info("entered stage", zap.String("stage", stage.String()))

	switch stage {
	case model.StageGenerating:
		c.startPollingLocked(ctx)
	case model.StageActive:
		c.setupActiveLocked(ctx)
	}
}

// SubmitTopics is the initialization panel's submit action. On acceptance
// the session moves to Generating; on any failure it stays in NeedsInit and
// the error is surfaced. There is no automatic retry.
func (c *Controller) SubmitTopics(ctx context.Context, topics string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stage != model.StageNeedsInit {
		return fmt.Errorf("course is not awaiting initialization (stage %s)", c.stage)
	}

	status, err := c.deps.Backend.InitializeCourse(ctx, c.cfg.CourseID, topics)
	if err != nil {
		c.notify("Failed to initialize course. Please try again.")
		return err
	}
	if status != "complete" {
		c.notify("Failed to initialize course. Please try again.")
		return fmt.Errorf("initialization rejected with status %q", status)
	}

	c.enterLocked(ctx, model.StageGenerating)
	return nil
}

func (c *Controller) setupActiveLocked(ctx context.Context) {
	snap, err := c.deps.Store.Load(ctx, c.cfg.CourseID)
	if err != nil {
		// The main panel stays up: chat still works, graph interactions
		// stay inert.
		c.graphReady = false
		c.log.Error("graph load failed", zap.Error(err))
		c.notify("Failed to load the course graph.")
		return
	}

	c.deps.Renderer.OnNodeSelected(func(nodeID string) {
		c.deps.Detail.Show(nodeID, c.deps.Store.Snapshot())
		c.logClick(nodeID)
	})
	c.deps.Renderer.Render(snap)
	c.graphReady = true
}

func (c *Controller) logClick(nodeID string) {
	if c.deps.Clicks == nil {
		return
	}
	snap := c.deps.Store.Snapshot()
	node, ok := snap.NodeByID(nodeID)
	if !ok {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.deps.Clicks.LogNodeClick(ctx, c.cfg.CourseID, node.ID, node.Label, node.Group); err != nil {
			c.log.Debug("node click logging failed", zap.Error(err))
		}
	}()
}

func (c *Controller) startPollingLocked(parent context.Context) {
	if c.cancelPoll != nil {
		return
	}
	pollCtx, cancel := context.WithTimeout(parent, c.cfg.MaxPollDuration)
	c.cancelPoll = cancel
	done := make(chan struct{})
	c.pollDone = done
	go c.pollLoop(parent, pollCtx, done)
}

// pollLoop queries course status every PollInterval until the course is
// Active or the loop is cancelled. Poll errors are transient: log and try
// again on the next tick.
func (c *Controller) pollLoop(parent, pollCtx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-pollCtx.Done():
			if errors.Is(pollCtx.Err(), context.DeadlineExceeded) {
				c.notify("Course generation is taking too long. Please come back later.")
			}
			return
		case <-ticker.C:
			stage, err := c.deps.Backend.CourseStatus(pollCtx, c.cfg.CourseID)
			if err != nil {
				c.log.Warn("status poll failed", zap.Error(err))
				continue
			}
			if stage != model.StageActive {
				continue
			}

			c.mu.Lock()
			if c.cancelPoll == nil {
				// Close tore polling down while this poll was in flight.
				c.mu.Unlock()
				return
			}
			c.cancelPoll()
			c.cancelPoll = nil
			c.pollDone = nil
			if c.stage != model.StageActive {
				c.enterLocked(parent, model.StageActive)
			}
			c.mu.Unlock()
			return
		}
	}
}

// Close cancels the polling loop and waits for it to exit. It must be called
// on teardown; an orphaned loop keeps a timer and its goroutine alive.
func (c *Controller) Close() {
	c.mu.Lock()
	cancel, done := c.cancelPoll, c.pollDone
	c.cancelPoll, c.pollDone = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (c *Controller) notify(msg string) {
	c.log.Warn(msg)
	if c.onError != nil {
		c.onError(msg)
	}
}
