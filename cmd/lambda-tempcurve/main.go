package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/christophergentle/tempcurve/internal/config"
	"github.com/christophergentle/tempcurve/internal/forecast"
	"github.com/christophergentle/tempcurve/internal/logging"
	"github.com/christophergentle/tempcurve/internal/publish"
	"github.com/christophergentle/tempcurve/internal/render"
	"github.com/christophergentle/tempcurve/internal/tempcurve"
	"github.com/christophergentle/tempcurve/internal/units"
)

// ChartEvent asks for the chart of one location and day
type ChartEvent struct {
	Location string `json:"location"`
	Date     string `json:"date"`
	Timezone string `json:"timezone,omitempty"`
}

// Response represents the Lambda response
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
	Key        string `json:"key,omitempty"`
	Valid      bool   `json:"valid"`
}

// DayStore loads stored forecast days
type DayStore interface {
	GetDay(ctx context.Context, location, date string) (*forecast.DayItem, error)
}

// ChartStore stores rendered charts
type ChartStore interface {
	ChartKey(location, date string) string
	Put(ctx context.Context, key string, data []byte) error
}

// ChartHandler handles the chart Lambda function
type ChartHandler struct {
	cfg      *config.Config
	logger   *slog.Logger
	days     DayStore
	charts   ChartStore
	renderer *render.Renderer
	now      func() time.Time
}

// NewChartHandler creates a handler from SSM configuration, falling back to
// the environment when SSM is unavailable
func NewChartHandler(ctx context.Context) (*ChartHandler, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stdout, cfg.Settings, "lambda-tempcurve")

	repo, err := forecast.NewRepository(ctx, cfg.AWS.ForecastTable)
	if err != nil {
		return nil, fmt.Errorf("failed to create forecast repository: %w", err)
	}
	publisher, err := publish.NewPublisher(ctx, cfg.AWS.Bucket, cfg.AWS.Prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	return newChartHandler(cfg, logger, repo, publisher), nil
}

func newChartHandler(cfg *config.Config, logger *slog.Logger, days DayStore, charts ChartStore) *ChartHandler {
	rc := render.DefaultConfig()
	rc.Background = cfg.Chart.Background
	rc.FontPath = cfg.Chart.FontPath
	return &ChartHandler{
		cfg:      cfg,
		logger:   logger,
		days:     days,
		charts:   charts,
		renderer: render.NewRenderer(rc),
		now:      time.Now,
	}
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	loader, err := config.NewSSMConfigLoader(ctx)
	if err == nil {
		cfg, ssmErr := loader.LoadConfig(ctx)
		if ssmErr == nil {
			return cfg, nil
		}
		err = ssmErr
	}
	slog.Warn("SSM config unavailable, using environment", "err", err)
	return config.LoadConfigFromEnv()
}

// HandleRequest is the main Lambda handler
func (h *ChartHandler) HandleRequest(ctx context.Context, event ChartEvent) (Response, error) {
	h.logger.Info("chart request received", "location", event.Location, "date", event.Date)

	if event.Location == "" {
		return Response{StatusCode: 400, Body: "location is required"}, nil
	}
	if event.Date == "" {
		event.Date = h.now().UTC().Format(forecast.DateLayout)
	}

	day, err := h.days.GetDay(ctx, event.Location, event.Date)
	if err != nil {
		h.logger.Error("failed to get forecast day", "err", err)
		return Response{
			StatusCode: 500,
			Body:       "Failed to get forecast: " + err.Error(),
		}, err
	}
	if event.Timezone != "" {
		day.Timezone = event.Timezone
	}

	state := tempcurve.DerivedState{}
	if records, err := day.Records(); err != nil {
		h.logger.Warn("failed to slice day", "err", err)
	} else {
		state = tempcurve.Derive(records)
	}
	if !state.Valid {
		h.logger.Warn("day has no chart", "location", event.Location, "date", event.Date)
	}

	frame := tempcurve.BuildFrame(tempcurve.Snapshot{State: state, Progress: 1}, tempcurve.FrameOptions{
		Layout: h.cfg.Chart.Layout(),
		Unit:   h.cfg.Chart.Unit,
		Format: units.Format,
	})
	data, err := h.renderer.RenderPNG(frame)
	if err != nil {
		h.logger.Error("failed to render chart", "err", err)
		return Response{
			StatusCode: 500,
			Body:       "Failed to render chart: " + err.Error(),
			Valid:      state.Valid,
		}, err
	}

	key := h.charts.ChartKey(event.Location, event.Date)
	if h.cfg.Settings.DryRun {
		h.logger.Info("dry run, skipping upload", "key", key, "bytes", len(data))
		return Response{
			StatusCode: 200,
			Body:       "Dry run mode - chart upload skipped",
			Key:        key,
			Valid:      state.Valid,
		}, nil
	}

	if err := h.charts.Put(ctx, key, data); err != nil {
		h.logger.Error("failed to upload chart", "err", err)
		return Response{
			StatusCode: 500,
			Body:       "Failed to upload chart: " + err.Error(),
			Valid:      state.Valid,
		}, err
	}

	h.logger.Info("chart published", "key", key, "valid", state.Valid)
	return Response{
		StatusCode: 200,
		Body:       "Chart published",
		Key:        key,
		Valid:      state.Valid,
	}, nil
}

func main() {
	handler, err := NewChartHandler(context.Background())
	if err != nil {
		slog.Error("failed to create chart handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(handler.HandleRequest)
}
