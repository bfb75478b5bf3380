package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/automoto/hookshot/config"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}

	port := flag.Int("port", 8080, "HTTP listen port")
	ttl := flag.Duration("ttl", 90*time.Second, "Server TTL before expiry")
	logLevel := flag.String("loglevel", config.Env("HOOKSHOT_LOG_LEVEL", "info"), "Log level")
	flag.Parse()

	if lvl, err := logrus.ParseLevel(*logLevel); err == nil {
		logrus.SetLevel(lvl)
	}

	reg := NewRegistry(*ttl)
	reg.Start(30 * time.Second)
	defer reg.Stop()

	addr := fmt.Sprintf(":%d", *port)
	log.Infof("starting on %s (TTL=%s)", addr, *ttl)
	if err := http.ListenAndServe(addr, NewMux(reg)); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
