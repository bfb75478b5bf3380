package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/hookshot/assets"
	"github.com/automoto/hookshot/config"
	"github.com/automoto/hookshot/server/core"
	"github.com/automoto/hookshot/server/sim"
	"github.com/automoto/hookshot/shared/leveldata"
	"github.com/automoto/hookshot/shared/protocol"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		logrus.Fatalf("Failed to load .env: %v", err)
	}

	port := flag.Uint("port", 7373, "Server port")
	configFile := flag.String("config", config.Env("HOOKSHOT_CONFIG", ""), "Tuning file (TOML); written with defaults if missing")
	tickRate := flag.Int("tickrate", 0, "Server tick rate (updates per second, 0 = from config)")
	name := flag.String("name", "", "Server display name (empty = from config)")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	worldName := flag.String("world", "", "World to load from the embedded worlds (empty = from config)")
	masterURL := flag.String("master", config.Env("HOOKSHOT_MASTER_URL", ""), "Master server URL (empty = don't register)")
	publicAddr := flag.String("public-address", config.Env("HOOKSHOT_PUBLIC_ADDRESS", ""), "Address advertised to the master server")
	stats := flag.String("statsview", "", "Serve runtime stats on this address (empty = off)")
	logLevel := flag.String("loglevel", config.Env("HOOKSHOT_LOG_LEVEL", "info"), "Log level")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	if lvl, err := logrus.ParseLevel(*logLevel); err == nil {
		logrus.SetLevel(lvl)
	} else {
		logrus.Warnf("Unknown log level %q, using info", *logLevel)
	}

	cfg := config.Default()
	if *configFile != "" {
		if _, err := os.Stat(*configFile); os.IsNotExist(err) {
			if err := config.SaveDefault(*configFile); err != nil {
				logrus.Fatalf("Failed to write default config: %v", err)
			}
		}
		loaded, err := config.Load(*configFile)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *tickRate > 0 {
		cfg.Server.TickRate = *tickRate
	}
	if *name != "" {
		cfg.Server.Name = *name
	}
	if *version != "" {
		cfg.Server.Version = *version
	}
	if *worldName != "" {
		cfg.Server.World = *worldName
	}
	if *masterURL != "" {
		cfg.Server.MasterURL = *masterURL
	}
	if *publicAddr != "" {
		cfg.Server.PublicAddress = *publicAddr
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid config: %v", err)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         config.Env("SENTRY_DSN", ""),
		Release:     cfg.Server.Version,
		Environment: config.Env("HOOKSHOT_ENV", "development"),
	}); err != nil {
		logrus.Warnf("Sentry disabled: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	if err := protocol.RegisterComponents(); err != nil {
		logrus.Fatalf("Failed to register components: %v", err)
	}

	worldData, err := leveldata.LoadWorldData(assets.Worlds, assets.WorldsDir+"/"+cfg.Server.World+".tmx")
	if err != nil {
		logrus.Fatalf("Failed to load world %q: %v", cfg.Server.World, err)
	}

	if *stats != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithAddr(*stats))
		mgr := statsview.New()
		go mgr.Start()
		logrus.Infof("Runtime stats on http://%s/debug/statsview", *stats)
	}

	server := core.NewServer(cfg, sim.WorldFromData(worldData))

	var reg *core.Registration
	if cfg.Server.MasterURL != "" {
		reg = core.NewRegistration(cfg.Server, server)
		reg.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("Shutting down server...")
		if reg != nil {
			reg.Stop()
		}
		server.Stop()
		sentry.Flush(2 * time.Second)
		os.Exit(0)
	}()

	logrus.Infof("Starting hookshot server %q on port %d (world: %s, tick rate: %d/s, version: %s)",
		cfg.Server.Name, *port, worldData.Name, cfg.Server.TickRate, cfg.Server.Version)
	if err := server.Start(*port); err != nil {
		logrus.Fatalf("Server error: %v", err)
	}
}
