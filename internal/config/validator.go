package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var supportedHistoryTypes = []string{"", "sqlite", "sqlite3", "postgres", "postgresql"}

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if strings.TrimSpace(viper.GetString("results_dir")) == "" {
		errors = append(errors, "results_dir must not be empty")
	}

	if strings.TrimSpace(viper.GetString("summary_path")) == "" {
		errors = append(errors, "summary_path must not be empty")
	}

	historyType := strings.ToLower(viper.GetString("history.type"))
	supported := false
	for _, t := range supportedHistoryTypes {
		if historyType == t {
			supported = true
			break
		}
	}
	if !supported {
		errors = append(errors, fmt.Sprintf("history.type must be sqlite or postgres, got: %s", historyType))
	}

	if (historyType == "postgres" || historyType == "postgresql") && viper.GetString("history.dsn") == "" {
		errors = append(errors, "history.dsn is required for postgres")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
