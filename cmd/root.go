package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yboleas/incendio-go/cmd/serve"
	"github.com/yboleas/incendio-go/cmd/stats"
	"github.com/yboleas/incendio-go/cmd/validate"
	"github.com/yboleas/incendio-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "incendio",
		Short: "Interactive analytics service for Spanish forest fire records",
	}

	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		serve.Command(settings),
		validate.Command(settings),
		stats.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Sync flag overrides back into the settings struct so command-line
		// arguments take precedence over the config file.
		settings.Debug = viper.GetBool("debug")
		settings.Data.FiresCSV = viper.GetString("data.firescsv")
		settings.Data.ProvincesGeoJSON = viper.GetString("data.provincesgeojson")
		settings.WebServer.Port = viper.GetString("webserver.port")
		return nil
	}

	return rootCmd
}

// setupFlags configures the global flags for the root command
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolP("debug", "d", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().String("fires-csv", settings.Data.FiresCSV, "Path to the fire records CSV")
	rootCmd.PersistentFlags().String("provinces-geojson", settings.Data.ProvincesGeoJSON, "Path to the province boundaries GeoJSON")
	rootCmd.PersistentFlags().StringP("port", "p", settings.WebServer.Port, "Port for the web server")

	// Bind flags to the viper settings
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		cobra.CheckErr(err)
	}
	if err := viper.BindPFlag("data.firescsv", rootCmd.PersistentFlags().Lookup("fires-csv")); err != nil {
		cobra.CheckErr(err)
	}
	if err := viper.BindPFlag("data.provincesgeojson", rootCmd.PersistentFlags().Lookup("provinces-geojson")); err != nil {
		cobra.CheckErr(err)
	}
	if err := viper.BindPFlag("webserver.port", rootCmd.PersistentFlags().Lookup("port")); err != nil {
		cobra.CheckErr(err)
	}
}
