package main

import (
	"simpledock/config"
	"simpledock/di"
	"simpledock/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
