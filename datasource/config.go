package datasource

import (
	"encoding/json"
	"os"
)

// Config represents the application configuration
type Config struct {
	OpenWeatherMap struct {
		APIKey string `json:"apiKey"`
	} `json:"openWeatherMap"`

	// Saved cities offered as quick choices in the dashboard
	SavedCities []string `json:"savedCities"`

	// City shown before the user picks anything
	DefaultCity string `json:"defaultCity"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}

	if config.DefaultCity == "" && len(config.SavedCities) > 0 {
		config.DefaultCity = config.SavedCities[0]
	}

	return config, nil
}

// ApplyEnv overrides config values from environment variables.
// OPENWEATHER_API_KEY takes precedence over the config file so the key
// can live in a secrets store instead of on disk.
func (c *Config) ApplyEnv() {
	if key := os.Getenv("OPENWEATHER_API_KEY"); key != "" {
		c.OpenWeatherMap.APIKey = key
	}
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.SavedCities = []string{
		"Bhubaneswar,OD,IN",
		"Bilaspur,CT,IN",
		"Delhi,DL,IN",
		"Kolkata,WB,IN",
		"Mumbai,MH,IN",
		"Chennai,TN,IN",
		"Bengaluru,KA,IN",
		"New York,US",
		"London,GB",
	}
	config.DefaultCity = config.SavedCities[0]
	return config
}
