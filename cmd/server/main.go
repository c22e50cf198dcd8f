package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/coursemap/coursemap/internal/analytics"
	"github.com/coursemap/coursemap/internal/canvas"
	"github.com/coursemap/coursemap/internal/config"
	"github.com/coursemap/coursemap/internal/core"
	"github.com/coursemap/coursemap/internal/driver"
	"github.com/coursemap/coursemap/internal/llm"
	"github.com/coursemap/coursemap/internal/logging"
	"github.com/coursemap/coursemap/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	logger, err := logging.New(os.Getenv("DEBUG") != "")
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
		logger.Warn("could not load config file, using defaults", zap.String("path", cfgPath), zap.Error(err))
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
		cfg.LLM.Model = "gpt-oss:latest"
		cfg.LLM.BaseURL = "http://localhost:11434"
	}

	ctx := context.Background()

	var store driver.CourseStore
	if cfg.Memgraph.URI != "" {
		d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			logger.Fatal("failed to connect to Memgraph", zap.Error(err))
		}
		if err := d.BuildIndices(ctx); err != nil {
			logger.Warn("failed to build indices", zap.Error(err))
		}
		store = driver.NewMemgraphStore(d)
	} else {
		logger.Warn("no Memgraph URI configured, course data will not survive restarts")
		store = driver.NewMemoryStore()
	}
	defer store.Close(ctx)

	gen, err := llm.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("failed to initialize LLM client", zap.Error(err))
	}

	files := canvas.NewClient(cfg.Canvas.BaseURL, cfg.Canvas.Token)
	defer files.Close()

	srv := server.New(
		store,
		core.NewBuilder(gen, logger),
		core.NewAnswerer(gen, logger),
		files,
		analytics.NewRecorder(store, logger),
		analytics.NewReporter(store, gen, logger),
		logger,
	)
	r := srv.SetupRouter()

	logger.Info("starting server", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
