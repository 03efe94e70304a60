package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"benchci/internal/history"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults for keys that are not set by file, environment or flag.
const (
	DefaultResultsDir  = "target/criterion"
	DefaultSummaryPath = "bench-summary.md"
)

// Config is a typed snapshot of the loaded configuration.
type Config struct {
	ResultsDir  string
	SummaryPath string
	MetricsFile string
	LogFile     string
	Verbose     bool
	Quiet       bool
	History     history.StoreConfig
}

// Load initializes the configuration from file and environment variables.
// A missing config file is not an error unless cfgFile names one explicitly.
func Load(cfgFile string) error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Debug("Ignoring unreadable .env file", "error", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("benchci")
	}

	viper.SetEnvPrefix("BENCHCI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// GitHub Actions hands us the step summary file through its own variable.
	_ = viper.BindEnv("summary_path", "BENCHCI_SUMMARY_PATH", "GITHUB_STEP_SUMMARY")

	viper.SetDefault("results_dir", DefaultResultsDir)
	viper.SetDefault("summary_path", DefaultSummaryPath)
	viper.SetDefault("metrics_file", "")
	viper.SetDefault("log_file", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("quiet", false)
	viper.SetDefault("history.type", "sqlite")
	viper.SetDefault("history.dsn", history.DefaultSQLitePath)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// Get returns the current configuration.
func Get() Config {
	return Config{
		ResultsDir:  viper.GetString("results_dir"),
		SummaryPath: viper.GetString("summary_path"),
		MetricsFile: viper.GetString("metrics_file"),
		LogFile:     viper.GetString("log_file"),
		Verbose:     viper.GetBool("verbose"),
		Quiet:       viper.GetBool("quiet"),
		History: history.StoreConfig{
			Type:             viper.GetString("history.type"),
			ConnectionString: viper.GetString("history.dsn"),
		},
	}
}
