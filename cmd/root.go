package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prodhub/workbench/internal/assist"
	"github.com/prodhub/workbench/internal/output"
	"github.com/prodhub/workbench/internal/store"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui        *output.UI
	dataStore store.Store

	verbose   bool
	dryRun    bool
	assumeYes bool
)

// Set from main.go via Execute.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "workbench",
	Short: "Product workbench - tickets, versions, documents, and outbound requests",
	Long: `workbench is a product operations console for the command line.
It tracks support tickets, product version plans, documents, outbound
delivery requests, and a shared navigation portal, with an HTTP API
and MCP server for integrations.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", buildVersion, buildCommit, buildDate)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return dashboardRun()
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would happen without making changes")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/workbench/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "workbench")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("WORKBENCH")
	viper.AutomaticEnv()

	// Defaults via viper.SetDefault()
	home, _ := os.UserHomeDir()
	defaultConfigDir := filepath.Join(home, ".config", "workbench")

	viper.SetDefault("state_dir", defaultConfigDir)
	viper.SetDefault("db_path", "")
	viper.SetDefault("port", 8080)
	viper.SetDefault("anthropic.api_key", "")
	viper.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
	ui.DryRun = dryRun

	// The store is initialized lazily, only when commands actually
	// need it. This allows config and version commands to run without
	// touching the database.
}

// getStore returns the shared store, initializing it on first call.
// With no db_path configured it runs on an in-memory store preloaded
// with demo data; set db_path to persist to SQLite.
func getStore() (store.Store, error) {
	if dataStore != nil {
		return dataStore, nil
	}

	dbPath := viper.GetString("db_path")
	if dbPath == "" {
		dataStore = store.NewMemoryStore(store.DefaultSeed())
		return dataStore, nil
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := s.Migrate(rootCmd.Context()); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	if err := s.SeedIfEmpty(rootCmd.Context(), store.DefaultSeed()); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("seed database: %w", err)
	}

	dataStore = s
	return dataStore, nil
}

// getAssist returns an assist client, or nil when no API key is set.
func getAssist() *assist.Client {
	apiKey := viper.GetString("anthropic.api_key")
	if apiKey == "" {
		return nil
	}
	return assist.NewClient(apiKey, viper.GetString("anthropic.model"))
}

// shortID returns a truncated ULID for display (first 12 chars).
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// confirm asks before a destructive action. --yes skips the prompt.
func confirm(format string, a ...any) bool {
	if assumeYes {
		return true
	}
	fmt.Fprintf(ui.Out, format+" [y/N] ", a...)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
