// Package validate implements the validate command that checks the
// configuration and data files without starting the server.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yboleas/incendio-go/internal/conf"
	"github.com/yboleas/incendio-go/internal/geo"
	"github.com/yboleas/incendio-go/internal/ingest"
)

// Command creates the validate command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and data files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, settings)
		},
	}
}

func runValidate(cmd *cobra.Command, settings *conf.Settings) error {
	if err := conf.ValidateSettings(settings); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}
	cmd.Println("Configuration: OK")

	_, stats, err := ingest.LoadFires(settings.Data.FiresCSV, settings.Data.MinYear)
	if err != nil {
		return fmt.Errorf("fire dataset invalid: %w", err)
	}
	cmd.Printf("Fire dataset: OK (%d rows, %d loaded, %d skipped)\n",
		stats.TotalRows, stats.Loaded,
		stats.SkippedBadDate+stats.SkippedOldYear+stats.SkippedNoCoord)

	geoData, err := geo.Load(settings.Data.ProvincesGeoJSON)
	if err != nil {
		return fmt.Errorf("province boundaries invalid: %w", err)
	}
	cmd.Printf("Province boundaries: OK (%d provinces, %d communities)\n",
		len(geoData.Provinces()), len(geoData.Communities()))

	return nil
}
