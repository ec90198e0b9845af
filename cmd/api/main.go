package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cropcast/internal/cache"
	"cropcast/internal/catalog"
	"cropcast/internal/config"
	"cropcast/internal/forecast"
	"cropcast/internal/handler"
	"cropcast/internal/history"
	"cropcast/internal/market"
	"cropcast/internal/recommend"
	"cropcast/internal/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config failed")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	cat, err := catalog.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("building crop catalogue failed")
	}

	hist := history.Load(cfg.DatabaseURL, cat, cfg.HistoryDays)

	// Optional startup top-up from the live mandi price API. Each crop gets
	// its own timeout so one slow fetch cannot starve the rest.
	if cfg.MandiAPIKey != "" {
		client := market.NewClient(cfg.MandiBaseURL, cfg.MandiAPIKey,
			time.Duration(cfg.RequestTimeout)*time.Second)
		for _, crop := range cat.Crops() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeout)*time.Second)
			obs, err := client.LatestPrices(ctx, crop, 30)
			cancel()
			if err != nil {
				log.Warn().Err(err).Str("crop", crop).Msg("mandi price fetch failed, keeping existing history")
				continue
			}
			hist.Add(obs)
		}
	}

	reg, err := registry.Load(cfg.ModelDir, cfg.StrictModels, cat.Crops(), cfg.RandomSeed)
	if err != nil {
		log.Fatal().Err(err).Msg("loading model artifacts failed")
	}

	forecaster := forecast.New(reg, hist, cat, cfg.ForecastMinDays, cfg.ForecastMaxDays)
	recommender := recommend.New(cat, reg, hist, cfg.TopK, cfg.RandomSeed)
	responseCache := cache.New(time.Duration(cfg.CacheTTLMinutes) * time.Minute)

	h := handler.New(forecaster, recommender, cat, reg, responseCache, cfg.ForecastDefault)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), handler.CORS(), handler.RequestLogger())
	h.Register(r)

	log.Info().Str("port", cfg.Port).Bool("models_loaded", reg.PriceLoaded()).Msg("cropcast API listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
