package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/deckhand"
	"github.com/aretw0/deckhand/internal/platform"
	"github.com/aretw0/deckhand/pkg/rates"
)

var (
	verbose    bool
	configPath string
	dataFile   string
	readOnly   bool
	noColor    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deckhand",
	Short: "A personal collection manager for playing cards and magic tricks",
	Long: `Deckhand keeps track of your playing-card decks, the things on your
wishlist and the magic tricks in your repertoire. Everything lives in one
JSON or YAML file that is rewritten atomically on every change.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
			color.NoColor = true
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/deckhand/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "Collection file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Open the collection without writing to it")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// loadConfig reads the config file named by --config or found in the
// default location.
func loadConfig() platform.FileConfig {
	path := configPath
	if path == "" {
		path = platform.DefaultConfigPath()
	}
	cfg, err := platform.LoadConfig(path)
	if err != nil {
		fatal("Failed to load config", err)
	}
	slog.Debug("config loaded", "path", path)
	return cfg
}

// resolveDataFile picks the collection file: the --file flag, then the
// config file, then a collection in the working directory or above it,
// then the XDG default.
func resolveDataFile(cfg platform.FileConfig) string {
	if dataFile != "" {
		return dataFile
	}
	if cfg.DataFile != "" {
		return cfg.DataFile
	}
	if wd, err := os.Getwd(); err == nil {
		found, err := platform.FindRoot(wd)
		if err == nil {
			return found
		}
		if !errors.Is(err, platform.ErrRootNotFound) {
			slog.Debug("local collection lookup failed", "error", err)
		}
	}
	return platform.DefaultDataFile()
}

// openService opens the collection for a command. Load problems are
// reported but never stop the command.
func openService(cfg platform.FileConfig) *deckhand.Service {
	path := resolveDataFile(cfg)

	opts := append(cfg.Options(), deckhand.WithLogger(slog.Default()))
	if readOnly {
		opts = append(opts, deckhand.WithReadOnly(true))
	}

	svc, err := deckhand.New(path, opts...)
	if err != nil {
		fatal("Failed to open collection", err)
	}
	if w := svc.LoadWarning(); w != nil {
		fmt.Fprintf(os.Stderr, "%s could not read the collection, starting from defaults: %v\n",
			color.YellowString("warning:"), w)
	}
	return svc
}

// newRateProvider builds the exchange rate provider from the loaded config.
func newRateProvider(cfg platform.FileConfig) *rates.Provider {
	ttl, _ := cfg.TTL()
	return rates.New(rates.Config{
		URL:      cfg.RateURL,
		TTL:      ttl,
		Fallback: cfg.FallbackRate,
		Logger:   slog.Default(),
	})
}
