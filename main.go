package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"quizboard/internal/config"
	"quizboard/internal/logger"
	"quizboard/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		logger.Setup("info", true)
		log.Fatal().Err(err).Msg("invalid settings")
	}

	port := flag.Int("port", settings.Port, "server port")
	gameConfig := flag.String("config", settings.GameConfigPath, "game config YAML file")
	flag.Parse()
	settings.Port = *port

	logger.Setup(settings.LogLevel, settings.LogPretty)
	if settings.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	game, err := config.LoadGame(*gameConfig)
	if err != nil {
		log.Fatal().Err(err).Str("path", *gameConfig).Msg("cannot load game config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(settings, game)
	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
