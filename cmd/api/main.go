package main

import (
	"context"
	"net/http"

	_ "forecast-locator-api/docs"
	"forecast-locator-api/internal/config"
	"forecast-locator-api/internal/handler"
	"forecast-locator-api/internal/middleware"
	"forecast-locator-api/internal/repository"
	"forecast-locator-api/internal/resolver"
	"forecast-locator-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Forecast Locator API
// @version 1.0
// @description Resolves U.S. ZIP codes to NWS forecast grid metadata.
// @host localhost:8080
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	log.Logger = config.Logger()

	locationResolver := resolver.New(resolver.Config{
		UserAgent:     config.UserAgent,
		Timeout:       config.RequestTimeout,
		ZipBaseURL:    config.ZipBaseURL,
		PointsBaseURL: config.PointsBaseURL,
	})
	log.Info().Str("user_agent", locationResolver.UserAgent()).Msg("location resolver ready")

	// Storage is optional: without DB_SOURCE resolutions are served but not recorded.
	var repo service.ZipPointRepository
	if config.DBSource != "" {
		conn, err := pgxpool.New(context.Background(), config.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		pgRepo := repository.NewRepository(conn)
		if err := pgRepo.EnsureSchema(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("cannot create schema")
		}
		repo = pgRepo
	} else {
		log.Warn().Msg("DB_SOURCE not set, resolved ZIP codes will not be recorded")
	}

	// Initialize layers
	zipPointService := service.NewZipPointService(locationResolver, repo)
	pointsService := service.NewPointsService(locationResolver)

	zipPointHandler := handler.NewZipPointHandler(zipPointService)
	pointsHandler := handler.NewPointsHandler(pointsService)

	gin.SetMode(config.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/zip/:zip/coordinates", zipPointHandler.Coordinates)
	r.GET("/zip/:zip/points", zipPointHandler.Points)
	r.GET("/points", pointsHandler.Points)
	r.GET("/offices/:office/zips", zipPointHandler.ListByOffice)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Info().Str("addr", config.ServerAddress).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
