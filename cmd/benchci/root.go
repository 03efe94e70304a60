package main

import (
	"fmt"
	"os"

	"benchci/internal/config"
	"benchci/internal/history"
	"benchci/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// newStoreFunc allows tests to swap the history backend.
var newStoreFunc = func(cfg history.StoreConfig) (history.Store, error) {
	return history.NewStore(cfg)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "benchci",
	Short: "Summarize and gate Criterion benchmark results in CI",
	Long: `benchci reads the estimates.json files Criterion writes under
target/criterion. It renders a Markdown summary for the CI step summary
and fails the build when a saved baseline comparison misses its
required speedup.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		stderr := rootCmd.ErrOrStderr()
		fmt.Fprintf(stderr, "%s %v\n", newStyles(stderr).errorText.Render("Error:"), err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./benchci.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress console logs (--log-file still receives them)")
	rootCmd.PersistentFlags().String("results-dir", config.DefaultResultsDir, "Criterion output directory")
	rootCmd.PersistentFlags().String("log-file", "", "Also append JSON logs to this file")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("results_dir", rootCmd.PersistentFlags().Lookup("results-dir"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
		return
	}

	if err := config.ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
		return
	}

	cfg := config.Get()
	telemetry.InitLogger(cfg.Verbose, cfg.LogFile, cfg.Quiet)
}

// openStore opens the configured history store.
func openStore() (history.Store, error) {
	store, err := newStoreFunc(config.Get().History)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return store, nil
}
