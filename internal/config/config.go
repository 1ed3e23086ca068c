// Package config centralises configuration parsing for the pipeline.
package config

import "os"

// Config captures runtime configuration values for a pipeline run.
type Config struct {
	SourceDir      string // Directory holding the TSV source tables.
	SourceSuffix   string // File suffix, a four digit year in the shipped datasets.
	OutputPath     string // Destination for the CSV dataset.
	PostgresURL    string // Optional secondary sink; empty disables it.
	MetricsAddress string // Optional prometheus listen address; empty disables it.
	OutlierRules   string // Optional JSON rule set overriding the defaults.
}

// Load reads environment variables into Config, applying the defaults the
// source datasets ship with.
func Load() Config {
	return Config{
		SourceDir:      getEnv("SOURCE_DIR", "./source_data"),
		SourceSuffix:   getEnv("SOURCE_SUFFIX", "2017"),
		OutputPath:     getEnv("OUTPUT_PATH", "./output_data/UsersDataset.csv"),
		PostgresURL:    getEnv("POSTGRES_URL", ""),
		MetricsAddress: getEnv("METRICS_ADDRESS", ""),
		OutlierRules:   getEnv("OUTLIER_RULES", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
