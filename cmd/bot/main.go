package main

import (
	"context"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/davemolk/countryguessr/internal/common/clock"
	"github.com/davemolk/countryguessr/internal/common/token"
	"github.com/davemolk/countryguessr/internal/countries"
	"github.com/davemolk/countryguessr/internal/handlers/discord"
	"github.com/davemolk/countryguessr/internal/metrics"
	"github.com/davemolk/countryguessr/internal/registry"
	statsRepo "github.com/davemolk/countryguessr/internal/repositories/stats"
	gameService "github.com/davemolk/countryguessr/internal/services/game"
	"github.com/davemolk/countryguessr/internal/services/narrator"
)

type config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	ResponseTimeout time.Duration `env:"RESPONSE_TIMEOUT"`
	RoundDelay      time.Duration `env:"ROUND_DELAY"`
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logger.WithError(err).Fatal("failed to parse configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Fatal("failed to connect to Redis")
	}

	stats, err := statsRepo.NewRedis(&statsRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create stats repository")
	}

	dataset, err := countries.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load country dataset")
	}
	picker := countries.New(&countries.Config{}, dataset)

	narratorSvc, err := narrator.NewService(&narrator.ServiceConfig{})
	if err != nil {
		logger.WithError(err).Fatal("failed to create narrator service")
	}

	sessionRegistry := registry.New()

	promRegistry := prometheus.NewRegistry()
	metricSet := metrics.NewSet(promRegistry)
	promRegistry.MustRegister(metrics.NewRegistryCollector(sessionRegistry))

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
		logger.WithField("addr", cfg.MetricsAddr).Info("serving metrics")
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			logger.WithError(err).Error("metrics server stopped")
		}
	}()

	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		Logger:        logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create Discord bot")
	}

	gameSvc, err := gameService.NewService(&gameService.Config{
		Registry:        sessionRegistry,
		StatsRepo:       stats,
		Picker:          picker,
		Courier:         bot.Courier(),
		Narrator:        narratorSvc,
		Clock:           &clock.DefaultClock{},
		TokenGenerator:  token.New(),
		Metrics:         metricSet,
		Logger:          logger,
		ResponseTimeout: cfg.ResponseTimeout,
		RoundDelay:      cfg.RoundDelay,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create game service")
	}
	bot.SetGameService(gameSvc)

	if err := bot.Start(); err != nil {
		logger.WithError(err).Fatal("failed to start Discord bot")
	}

	waitForShutdown(logger)

	if err := bot.Stop(); err != nil {
		logger.WithError(err).Error("error stopping bot")
	}

	logger.Info("bot has been shut down")
}
