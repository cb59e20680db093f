package main

import (
	"flag"
	"log"
	"os"

	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/internal/app"
	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/internal/config"
	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/internal/store"
	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/internal/ui"
	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/internal/util"
)

func main() {
	configPath := flag.String("config", config.ConfigPath, "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := util.InitLogger(cfg.LogLevel)

	var dataStore store.Store
	if cfg.RedisAddr != "" {
		dataStore = store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	} else {
		dataStore, err = store.NewGormStore(cfg.DataPath)
		if err != nil {
			log.Fatalf("failed to open local store: %v", err)
		}
	}

	core, err := app.New(app.Config{
		BackendURL: cfg.BackendURL,
		Store:      dataStore,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	if err := ui.New(core, os.Stdin, os.Stdout).Run(); err != nil {
		log.Fatalf("ui: %v", err)
	}
}
