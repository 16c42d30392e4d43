package handler

import (
	"net/http"
	"sync"

	"go.uber.org/zap"

	"framestudio/internal/config"
	"framestudio/internal/handlers"
)

var (
	once    sync.Once
	app     *handlers.App
	initErr error
)

func setup() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	logger, err := zap.NewProduction()
	if err != nil {
		initErr = err
		return
	}
	app, initErr = handlers.NewApp(cfg, logger)
}

// Handler is the serverless entrypoint. Sessions live only as long as the
// function instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	if initErr != nil {
		http.Error(w, "service unavailable: "+initErr.Error(), http.StatusServiceUnavailable)
		return
	}
	app.Engine.ServeHTTP(w, r)
}
