package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"vision-batch-service/internal/config"
	httpapi "vision-batch-service/internal/http"
	"vision-batch-service/internal/service"
	"vision-batch-service/internal/vision"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	analyzer, err := vision.NewGemini(
		context.Background(),
		cfg.Vision.APIKey,
		cfg.Vision.Model,
		cfg.Vision.Prompt,
		cfg.Vision.Timeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create vision analyzer")
	}
	defer analyzer.Close()

	batchService := service.NewBatchService(analyzer, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	handler := httpapi.NewHandler(batchService, cfg, log)
	handler.Register(r)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().
		Str("addr", addr).
		Str("model", cfg.Vision.Model).
		Int("max_files", cfg.Upload.MaxFiles).
		Msg("starting server")

	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
