package config

const (
	defaultConfigPath     = "~/.config/audibleseries/config.toml"
	defaultSeriesPath     = "~/.config/audibleseries/series.yaml"
	projectConfigName     = "audibleseries.toml"
	defaultMarketplace    = "us"
	defaultTimeoutSeconds = 15
	defaultNtfyTimeout    = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
)

// marketplaces maps a marketplace code to its catalog API root.
var marketplaces = map[string]string{
	"us": "https://api.audible.com",
	"uk": "https://api.audible.co.uk",
	"de": "https://api.audible.de",
	"fr": "https://api.audible.fr",
	"ca": "https://api.audible.ca",
	"it": "https://api.audible.it",
	"au": "https://api.audible.com.au",
	"in": "https://api.audible.in",
	"jp": "https://api.audible.co.jp",
	"es": "https://api.audible.es",
	"br": "https://api.audible.com.br",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Catalog: Catalog{
			Marketplace:    defaultMarketplace,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Series: SeriesFile{
			OptionsPath: defaultSeriesPath,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// Marketplaces returns the supported marketplace codes and API roots.
func Marketplaces() map[string]string {
	out := make(map[string]string, len(marketplaces))
	for code, url := range marketplaces {
		out[code] = url
	}
	return out
}
