// Package stats implements the stats command that prints summary figures
// for the fire dataset on the command line.
package stats

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yboleas/incendio-go/internal/conf"
	"github.com/yboleas/incendio-go/internal/datastore"
	"github.com/yboleas/incendio-go/internal/fire"
	"github.com/yboleas/incendio-go/internal/ingest"
)

// Command creates the stats command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print summary statistics for the fire dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, settings)
		},
	}
	cmd.Flags().String("community", "", "Restrict statistics to one autonomous community")
	return cmd
}

func runStats(cmd *cobra.Command, settings *conf.Settings) error {
	if err := conf.ValidateSettings(settings); err != nil {
		return err
	}

	fires, _, err := ingest.LoadFires(settings.Data.FiresCSV, settings.Data.MinYear)
	if err != nil {
		return err
	}

	ds := datastore.New(settings)
	if ds == nil {
		return fmt.Errorf("no database backend enabled")
	}
	if err := ds.Open(); err != nil {
		return err
	}
	defer ds.Close()

	if err := ds.InsertFires(fires); err != nil {
		return err
	}

	community, _ := cmd.Flags().GetString("community")
	f := &datastore.Filter{Community: community}

	count, err := ds.CountFires(f)
	if err != nil {
		return err
	}
	area, err := ds.TotalBurnedArea(f)
	if err != nil {
		return err
	}
	peak, err := ds.PeakYear(f)
	if err != nil {
		return err
	}
	minYear, maxYear, err := ds.YearRange()
	if err != nil {
		return err
	}

	scope := "España"
	if community != "" {
		scope = community
	}
	cmd.Printf("Ámbito:              %s\n", scope)
	cmd.Printf("Periodo:             %d–%d\n", minYear, maxYear)
	cmd.Printf("Incendios:           %d\n", count)
	cmd.Printf("Superficie quemada:  %.1f ha (%s)\n", area, fire.FormatArea(area))
	cmd.Printf("Peor año:            %d\n", peak)

	ranking, err := ds.RegionalRanking(f, settings.Dashboard.RankingLimit)
	if err != nil {
		return err
	}
	if len(ranking) > 0 {
		cmd.Println("\nRanking (media anual de ha quemadas):")
		for i, row := range ranking {
			cmd.Printf("  %2d. %-25s %12.1f ha/año\n", i+1, row.Region, row.AnnualMeanArea)
		}
	}

	return nil
}
