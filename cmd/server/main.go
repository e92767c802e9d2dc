package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/kateder/internal/app"
	"github.com/shrimpsizemoose/kateder/internal/handlers"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to init service: %v", err)
	}
	defer service.Close()

	mux := handlers.NewRouter(service)
	mux.Handle("GET /metrics", promhttp.Handler())

	logger.Info.Printf("Starting kateder server on %s", service.Config.Server.Port)
	if err := http.ListenAndServe(service.Config.Server.Port, mux); err != nil {
		logger.Error.Fatalf("Kateder server failed: %v", err)
	}
}
