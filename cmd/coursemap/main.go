// Command coursemap is the terminal client: it enters the course's current
// lifecycle stage, polls during generation, and once active offers the graph
// and the QA chat.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/coursemap/coursemap/internal/api"
	"github.com/coursemap/coursemap/internal/chat"
	"github.com/coursemap/coursemap/internal/config"
	"github.com/coursemap/coursemap/internal/graph"
	"github.com/coursemap/coursemap/internal/logging"
	"github.com/coursemap/coursemap/internal/session"
	"github.com/coursemap/coursemap/internal/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	courseID := flag.String("course", os.Getenv("COURSE_ID"), "course id to open")
	backendURL := flag.String("backend", "", "backend base URL (overrides config)")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	if *courseID == "" {
		log.Fatal("a course id is required (-course or COURSE_ID)")
	}

	logger, err := logging.New(*debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	if *backendURL != "" {
		cfg.Backend.BaseURL = *backendURL
	}

	client := api.NewClient(cfg.Backend.BaseURL)
	defer client.Close()

	out := os.Stdout
	panels := session.Panels{
		Init:     ui.NewPanel(out, "Course setup", "Enter `/init topic one, topic two, ...` to build the course graph."),
		NotReady: ui.NewPanel(out, "Not ready", "This course is not available yet. Check back later."),
		Loading:  ui.NewPanel(out, "Generating", "Building the course graph. This can take a few minutes..."),
		Main:     ui.NewPanel(out, "Course map", "Commands: /open <node>, /files on|off, /quit. Anything else is a question."),
	}

	store := graph.NewStore(client, logger)
	renderer := graph.NewRenderer(ui.NewCanvas(out), logger)
	detail := graph.NewDetailPanel(ui.NewDetailView(out))
	chatSession := chat.NewSession(client, *courseID, logger)

	ctrl := session.NewController(
		session.Config{
			CourseID:     *courseID,
			PollInterval: time.Duration(cfg.Backend.PollSeconds) * time.Second,
		},
		session.Deps{
			Backend:  client,
			Store:    store,
			Renderer: renderer,
			Detail:   detail,
			Chat:     chatSession,
			Clicks:   client,
		},
		panels,
		logger,
	)
	ctrl.SetOnError(func(msg string) { ui.PrintError(out, msg) })
	defer ctrl.Close()

	ctx := context.Background()
	stage, err := client.Launch(ctx, *courseID)
	if err != nil {
		logger.Fatal("failed to reach backend", zap.Error(err))
	}
	ctrl.Enter(ctx, stage)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			return
		case strings.HasPrefix(line, "/init "):
			if err := ctrl.SubmitTopics(ctx, strings.TrimPrefix(line, "/init ")); err != nil {
				logger.Debug("initialization failed", zap.Error(err))
			}
		case strings.HasPrefix(line, "/open "):
			renderer.Click(strings.TrimSpace(strings.TrimPrefix(line, "/open ")))
		case line == "/files on":
			renderer.SetFilesVisible(true)
		case line == "/files off":
			renderer.SetFilesVisible(false)
		case line == "":
			// Enter with no text sends nothing, same as an empty chat query.
		default:
			reply, sent := chatSession.Send(ctx, line)
			if sent {
				ui.PrintMessage(out, reply)
			}
		}
	}
}
