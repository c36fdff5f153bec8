// Package serve implements the serve command that runs the dashboard
// web service.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yboleas/incendio-go/internal/conf"
	"github.com/yboleas/incendio-go/internal/datastore"
	"github.com/yboleas/incendio-go/internal/geo"
	"github.com/yboleas/incendio-go/internal/httpcontroller"
	"github.com/yboleas/incendio-go/internal/ingest"
	"github.com/yboleas/incendio-go/internal/logging"
	"github.com/yboleas/incendio-go/internal/observability"
)

const shutdownTimeout = 10 * time.Second

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the fire dataset and serve the analytics dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(settings)
		},
	}
}

func runServe(settings *conf.Settings) error {
	if err := conf.ValidateSettings(settings); err != nil {
		return err
	}

	log := logging.ForService("serve")

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	if err := datastore.InitializeLogger(""); err != nil {
		log.Warn("Datastore file logging disabled", "error", err)
	}

	// The CSV and the boundary file are independent inputs, load them
	// concurrently.
	var (
		fires   []datastore.Fire
		stats   *ingest.Stats
		geoData *geo.Dataset
	)
	loadStart := time.Now()
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		fires, stats, err = ingest.LoadFires(settings.Data.FiresCSV, settings.Data.MinYear)
		return err
	})
	g.Go(func() error {
		var err error
		geoData, err = geo.Load(settings.Data.ProvincesGeoJSON)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	metrics.Ingest.RecordLoadDuration(time.Since(loadStart).Seconds())
	metrics.Ingest.RecordRows("loaded", stats.Loaded)
	metrics.Ingest.RecordRows("bad_date", stats.SkippedBadDate)
	metrics.Ingest.RecordRows("old_year", stats.SkippedOldYear)
	metrics.Ingest.RecordRows("no_coord", stats.SkippedNoCoord)

	ds := datastore.New(settings)
	if ds == nil {
		return fmt.Errorf("no database backend enabled")
	}
	if err := ds.Open(); err != nil {
		return err
	}
	defer func() {
		if err := ds.Close(); err != nil {
			log.Error("Failed to close datastore", "error", err)
		}
	}()

	if err := ds.InsertFires(fires); err != nil {
		return err
	}
	ds.SetMetrics(metrics.Datastore)
	metrics.Datastore.SetFireRecords(len(fires))

	server, err := httpcontroller.New(settings, ds, geoData, metrics)
	if err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	log.Info("Dashboard ready",
		"records", len(fires),
		"host", settings.WebServer.Host,
		"port", settings.WebServer.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Info("Received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
