// conf/validate.go settings validation
package conf

import (
	"fmt"
	"strconv"
)

// ValidateSettings checks the loaded settings for values that cannot work at runtime.
func ValidateSettings(settings *Settings) error {
	if settings.Data.FiresCSV == "" {
		return fmt.Errorf("data.firescsv must not be empty")
	}
	if settings.Data.ProvincesGeoJSON == "" {
		return fmt.Errorf("data.provincesgeojson must not be empty")
	}
	if settings.Data.MinYear <= 0 {
		return fmt.Errorf("data.minyear must be a positive year, got %d", settings.Data.MinYear)
	}

	if settings.Dashboard.CacheTTLMinutes < 0 {
		return fmt.Errorf("dashboard.cachettlminutes must not be negative, got %d", settings.Dashboard.CacheTTLMinutes)
	}
	if settings.Dashboard.RankingLimit <= 0 {
		return fmt.Errorf("dashboard.rankinglimit must be positive, got %d", settings.Dashboard.RankingLimit)
	}
	if settings.Dashboard.MajorFireThreshold <= 0 {
		return fmt.Errorf("dashboard.majorfirethreshold must be positive, got %f", settings.Dashboard.MajorFireThreshold)
	}
	if settings.Dashboard.SeasonalMinArea < 0 {
		return fmt.Errorf("dashboard.seasonalminarea must not be negative, got %f", settings.Dashboard.SeasonalMinArea)
	}

	if settings.WebServer.Enabled {
		port, err := strconv.Atoi(settings.WebServer.Port)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("webserver.port must be a valid port number, got %q", settings.WebServer.Port)
		}
	}

	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		return fmt.Errorf("at least one of output.sqlite or output.mysql must be enabled")
	}
	if settings.Output.SQLite.Enabled && settings.Output.SQLite.Path == "" {
		return fmt.Errorf("output.sqlite.path must not be empty when sqlite is enabled")
	}
	if settings.Output.MySQL.Enabled {
		if settings.Output.MySQL.Database == "" || settings.Output.MySQL.Host == "" {
			return fmt.Errorf("output.mysql requires database and host")
		}
	}

	return nil
}
