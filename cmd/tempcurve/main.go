package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/christophergentle/tempcurve/internal/animation"
	"github.com/christophergentle/tempcurve/internal/config"
	"github.com/christophergentle/tempcurve/internal/forecast"
	"github.com/christophergentle/tempcurve/internal/logging"
	"github.com/christophergentle/tempcurve/internal/publish"
	"github.com/christophergentle/tempcurve/internal/render"
	"github.com/christophergentle/tempcurve/internal/scheduler"
	"github.com/christophergentle/tempcurve/internal/tempcurve"
	"github.com/christophergentle/tempcurve/internal/units"
)

func main() {
	var (
		configPath = flag.String("config", config.GetConfigPath(), "Path to config.yaml (defaults apply when missing)")
		dataPath   = flag.String("data", "", "JSON file with an array of forecast days")
		location   = flag.String("location", "", "Read days for this location from DynamoDB instead of -data")
		fromDate   = flag.String("from-date", "", "First date to read from DynamoDB (2006-01-02)")
		toDate     = flag.String("to-date", "", "Last date to read from DynamoDB (2006-01-02)")
		dayIndex   = flag.Int("day", 0, "Index of the day to render")
		fromIndex  = flag.Int("from", -1, "Export the transition from this day index to -day")
		watch      = flag.Duration("watch", 0, "Cycle through all days live, switching at this interval")
		every      = flag.Duration("every", 0, "Reload and re-render -day on this interval (e.g. 1h to follow the current hour)")
		outDir     = flag.String("out", ".", "Output directory for PNG files")
		dumpJSON   = flag.Bool("json", false, "Print frame geometry as JSON")
		importDays = flag.Bool("import", false, "Store the -data days in DynamoDB and exit")
		upload     = flag.Bool("upload", false, "Upload rendered PNGs to S3")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.Settings, "tempcurve")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli{
		cfg:      cfg,
		logger:   logger,
		renderer: newRenderer(cfg),
		outDir:   *outDir,
		dumpJSON: *dumpJSON,
	}

	days, err := app.loadDays(ctx, *dataPath, *location, *fromDate, *toDate)
	if err != nil {
		logger.Error("failed to load forecast days", "err", err)
		os.Exit(1)
	}
	logger.Info("loaded forecast days", "count", len(days))

	if *importDays {
		if err := app.importDays(ctx, days); err != nil {
			logger.Error("import failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if *upload && !cfg.Settings.DryRun {
		publisher, err := publish.NewPublisher(ctx, cfg.AWS.Bucket, cfg.AWS.Prefix)
		if err != nil {
			logger.Error("failed to create publisher", "err", err)
			os.Exit(1)
		}
		app.publisher = publisher
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("failed to create output directory", "err", err)
		os.Exit(1)
	}

	switch {
	case *every > 0:
		job := func(ctx context.Context) error {
			days, err := app.loadDays(ctx, *dataPath, *location, *fromDate, *toDate)
			if err != nil {
				return err
			}
			return app.renderDay(ctx, days, *dayIndex)
		}
		err = scheduler.New(*every, job, logger).Start(ctx)
	case *watch > 0:
		err = app.watch(ctx, days, *watch)
	case *fromIndex >= 0:
		err = app.exportTransition(ctx, days, *fromIndex, *dayIndex)
	default:
		err = app.renderDay(ctx, days, *dayIndex)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("tempcurve failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.LoadConfigFromEnv()
	}
	return config.LoadConfig(path)
}

func newRenderer(cfg *config.Config) *render.Renderer {
	rc := render.DefaultConfig()
	rc.Background = cfg.Chart.Background
	rc.FontPath = cfg.Chart.FontPath
	return render.NewRenderer(rc)
}

type cli struct {
	cfg       *config.Config
	logger    *slog.Logger
	renderer  *render.Renderer
	publisher *publish.Publisher
	outDir    string
	dumpJSON  bool
}

func (a *cli) frameOptions() tempcurve.FrameOptions {
	return tempcurve.FrameOptions{
		Layout: a.cfg.Chart.Layout(),
		Unit:   a.cfg.Chart.Unit,
		Format: units.Format,
	}
}

func (a *cli) loadDays(ctx context.Context, dataPath, location, from, to string) ([]forecast.DayItem, error) {
	if location == "" {
		if dataPath == "" {
			return nil, errors.New("either -data or -location is required")
		}
		return forecast.LoadDays(dataPath)
	}

	if from == "" {
		from = time.Now().Format(forecast.DateLayout)
	}
	if to == "" {
		to = from
	}
	repo, err := forecast.NewRepository(ctx, a.cfg.AWS.ForecastTable)
	if err != nil {
		return nil, err
	}
	return repo.ListDays(ctx, location, from, to)
}

func (a *cli) importDays(ctx context.Context, days []forecast.DayItem) error {
	if a.cfg.Settings.DryRun {
		a.logger.Info("dry run, skipping import", "days", len(days))
		return nil
	}
	repo, err := forecast.NewRepository(ctx, a.cfg.AWS.ForecastTable)
	if err != nil {
		return err
	}
	for _, day := range days {
		if err := repo.PutDay(ctx, day); err != nil {
			return err
		}
		a.logger.Info("stored forecast day", "location", day.Location, "date", day.Date)
	}
	return nil
}

func (a *cli) renderDay(ctx context.Context, days []forecast.DayItem, index int) error {
	ds := forecast.ToDataset(days)
	state := ds.Derive(index)
	if !state.Valid {
		a.logger.Warn("day has no chart", "day", index)
	}

	frame := tempcurve.BuildFrame(tempcurve.Snapshot{State: state, Progress: 1}, a.frameOptions())
	name := fmt.Sprintf("day-%02d.png", index)
	key := ""
	if a.publisher != nil && index >= 0 && index < len(days) {
		key = a.publisher.ChartKey(days[index].Location, days[index].Date)
	}
	return a.emit(ctx, frame, name, key)
}

func (a *cli) exportTransition(ctx context.Context, days []forecast.DayItem, from, to int) error {
	ds := forecast.ToDataset(days)
	snapshots, err := animation.Record(ds.Derive(from), ds.Derive(to), animation.Options{
		Duration: a.cfg.Chart.TransitionDuration(),
		Interval: a.cfg.Chart.FrameInterval(),
		Logger:   a.logger,
	})
	if err != nil {
		return err
	}

	frames := animation.Frames(snapshots, a.frameOptions())
	a.logger.Info("exporting transition", "from", from, "to", to, "frames", len(frames))
	for i, frame := range frames {
		name := fmt.Sprintf("transition-%03d.png", i)
		key := ""
		if a.publisher != nil && to >= 0 && to < len(days) {
			key = a.publisher.FrameKey(days[to].Location, days[to].Date, i)
		}
		if err := a.emit(ctx, frame, name, key); err != nil {
			return err
		}
	}
	return nil
}

// watch drives the engine on a real frame loop, switching to the next day
// every interval and writing each finished chart to current.png.
func (a *cli) watch(ctx context.Context, days []forecast.DayItem, interval time.Duration) error {
	ds := forecast.ToDataset(days)
	if ds.Len() == 0 {
		return errors.New("no days to watch")
	}

	loop := tempcurve.NewFrameLoop(a.cfg.Chart.FrameInterval(), a.logger)
	engine := tempcurve.NewEngine(ds.Derive(0), tempcurve.SystemClock{}, loop,
		tempcurve.WithDuration(a.cfg.Chart.TransitionDuration()),
		tempcurve.WithLogger(a.logger),
		tempcurve.WithFrameHandler(func(s tempcurve.Snapshot) {
			if s.Progress < 1 {
				return
			}
			frame := tempcurve.BuildFrame(s, a.frameOptions())
			if err := a.emit(ctx, frame, "current.png", ""); err != nil {
				a.logger.Error("failed to write frame", "err", err)
			}
		}),
	)

	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	day := 0
	for {
		select {
		case <-ctx.Done():
			return <-errc
		case err := <-errc:
			return err
		case <-ticker.C:
			day = (day + 1) % ds.Len()
			next := ds.Derive(day)
			a.logger.Info("switching day", "day", day, "valid", next.Valid)
			if err := loop.Post(ctx, func() { engine.SetTarget(next) }); err != nil {
				return err
			}
		}
	}
}

func (a *cli) emit(ctx context.Context, frame tempcurve.Frame, name, key string) error {
	if a.dumpJSON {
		out, err := json.Marshal(frameJSON(frame))
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}

	data, err := a.renderer.RenderPNG(frame)
	if err != nil {
		return err
	}

	path := filepath.Join(a.outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.logger.Debug("wrote frame", "path", path, "progress", frame.Progress, "hidden", frame.Hidden)

	if a.publisher != nil && key != "" {
		if err := a.publisher.Put(ctx, key, data); err != nil {
			return err
		}
		a.logger.Info("uploaded chart", "key", key)
	}
	return nil
}

type frameDump struct {
	tempcurve.Frame
	TemperatureArea string `json:"temperatureArea,omitempty"`
	ApparentArea    string `json:"apparentArea,omitempty"`
}

func frameJSON(f tempcurve.Frame) frameDump {
	return frameDump{
		Frame:           f,
		TemperatureArea: f.TemperatureArea.String(),
		ApparentArea:    f.ApparentArea.String(),
	}
}
