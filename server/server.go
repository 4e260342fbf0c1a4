package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mergington.GO/api"
	_ "mergington.GO/api/activities"
	_ "mergington.GO/api/graphql"
	_ "mergington.GO/api/health"
	_ "mergington.GO/api/metrics"
	_ "mergington.GO/api/static"
	"mergington.GO/config"
	"mergington.GO/core/cache"
	"mergington.GO/core/events"
	"mergington.GO/core/metrics"
	"mergington.GO/core/registry"
	"mergington.GO/cron"
	"mergington.GO/cron/jobs"
	"mergington.GO/model/seed"
	activityRepo "mergington.GO/model/repository/activity"
	activityService "mergington.GO/service/activity"
)

// New builds the echo instance with middleware and every registered route module.
func New(s *api.Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(s.Logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestDuration)
	e.Use(requestLogger(s.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())

	api.ApplyRoutes(e, s)
	return e
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	})
}

// requestDuration sets X-Request-Duration-ms and records the request histogram. It runs
// outside the request logger, which has already written any error response.
func requestDuration(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		c.Set(registry.KeyRequestStart, start)
		c.Response().Before(func() {
			ms := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(ms, 10))
		})
		err := next(c)
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(c.Response().Status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// NewServices wires the registry, cache, publisher and logger from cfg.
func NewServices(cfg *config.Config, log *zap.Logger, pub events.Publisher) (*api.Services, error) {
	acts, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	repo, err := activityRepo.NewActivityRepository(acts)
	if err != nil {
		return nil, err
	}
	svc := activityService.NewService(repo,
		activityService.WithCache(cache.NewCache(), cfg.CacheTTL),
		activityService.WithPublisher(pub),
		activityService.WithLogger(log),
	)
	return &api.Services{
		Activities: svc,
		Logger:     log,
		StaticDir:  cfg.StaticDir,
	}, nil
}

// Run starts the HTTP server (and the cron scheduler when enabled) and blocks until ctx
// is cancelled or the server fails.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	var pub events.Publisher = events.NopPublisher{}
	if rdb := config.NewRedis(cfg.Redis); rdb != nil {
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis configured but not reachable, roster events disabled.", zap.Error(err))
		} else {
			log.Info("Redis connection successful.", zap.String("channel", cfg.Redis.Channel))
			pub = events.NewRedisPublisher(rdb, cfg.Redis.Channel)
		}
	}

	s, err := NewServices(cfg, log, pub)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	e := New(s)

	if cfg.Banner {
		figure.NewFigure("Mergington", "small", true).Print()
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Cron.Enabled {
		cron.Register(jobs.RosterReportName, cfg.Cron.RosterSchedule,
			jobs.RosterReport(s.Activities.Repository(), log.Named("cron")))
		c, err := cron.StartCron(log.Named("cron"))
		if err != nil {
			return err
		}
		g.Go(func() error {
			<-gctx.Done()
			<-c.Stop().Done()
			return nil
		})
	}

	g.Go(func() error {
		log.Info("Server running", zap.String("addr", ":"+cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("Shutting down server")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
