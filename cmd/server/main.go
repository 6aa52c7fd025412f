package main // Entry point package

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/lmittmann/tint"

	"github.com/iliyamo/weather-mood/internal/config"
	"github.com/iliyamo/weather-mood/internal/database"
	"github.com/iliyamo/weather-mood/internal/handler"
	"github.com/iliyamo/weather-mood/internal/repository"
	"github.com/iliyamo/weather-mood/internal/router"
	"github.com/iliyamo/weather-mood/internal/weather"
)

func main() {
	setupDB := flag.Bool("setup-db", false, "create the database tables and exit")
	drop := flag.Bool("drop", false, "with -setup-db: drop existing tables first")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "err", err)
	}

	cfg := config.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen}))
	slog.SetDefault(logger)

	db, err := database.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if *setupDB {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.Setup(ctx, db, *drop); err != nil {
			slog.Error("schema setup failed", "err", err)
			os.Exit(1)
		}
		slog.Info("schema setup complete", "dropped", *drop)
		return
	}

	// One shared client for both outbound provider calls.
	httpClient := &http.Client{Timeout: 10 * time.Second}

	users := repository.NewUserRepo(db)
	readings := repository.NewWeatherRepo(db)

	authH := handler.NewAuthHandler(cfg, users)
	userH := handler.NewUserHandler(users)
	weatherH := handler.NewWeatherHandler(readings,
		weather.NewWeatherAPI(httpClient, cfg.WeatherAPIKey),
		weather.NewTomorrowIO(httpClient, cfg.TomorrowAPIKey),
		cfg.AMQPURL)
	systemH := handler.NewSystemHandler(db)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, authH, userH, weatherH, systemH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr, "env", cfg.Env)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
}
