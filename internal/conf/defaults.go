// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "incendio-go")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/incendio.log")

	viper.SetDefault("data.firescsv", "data/fires_all.csv")
	viper.SetDefault("data.provincesgeojson", "data/provincias_espana.geojson")
	viper.SetDefault("data.minyear", 1983)

	viper.SetDefault("dashboard.cachettlminutes", 5)
	viper.SetDefault("dashboard.rankinglimit", 10)
	viper.SetDefault("dashboard.majorfirethreshold", 500.0)
	viper.SetDefault("dashboard.seasonalminarea", 20.0)

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.debug", false)
	viper.SetDefault("webserver.host", "0.0.0.0")
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.log.enabled", true)
	viper.SetDefault("webserver.log.path", "logs/http.log")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "file::memory:?cache=shared")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "incendio")
	viper.SetDefault("output.mysql.password", "secret")
	viper.SetDefault("output.mysql.database", "incendio")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")
}
