package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/webwalker/internal/config"
	"github.com/zjrosen/webwalker/internal/infrastructure/sqlite"
	"github.com/zjrosen/webwalker/internal/log"
	"github.com/zjrosen/webwalker/internal/paths"
	"github.com/zjrosen/webwalker/internal/session"
	"github.com/zjrosen/webwalker/internal/snapshots/domain"
	"github.com/zjrosen/webwalker/internal/tracing"
	"github.com/zjrosen/webwalker/internal/ui/navigator"
	"github.com/zjrosen/webwalker/internal/watcher"
)

func init() {
	// Query the terminal background before bubbletea owns stdin, otherwise
	// the OSC 11 reply can leak into the prompt input.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "webwalker",
	Short: "Build a directory tree of a web application while spidering it by hand",
	Long: `webwalker grows a directory tree of a web application from lists of
links scraped out of each page you visit, and saves it as an indented report.

Without --output-file an interactive navigator is started.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/webwalker/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "",
		"base directory for relative input and output files")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write a debug log (also enabled by WEBWALKER_DEBUG)")

	rootCmd.Flags().StringP("input-file", "i", "",
		"file of scraped links used to populate the root")
	rootCmd.Flags().StringP("input-tree", "I", "",
		"saved directory tree to continue from")
	rootCmd.Flags().StringP("root-directory", "r", "",
		"name of the root directory (default \"/\")")
	rootCmd.Flags().StringP("output-file", "o", "",
		"write the tree to this file and exit")
	rootCmd.Flags().StringP("hostname", "H", "",
		"host stripped from scraped links")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"do not re-populate the root when the input file changes")
	rootCmd.MarkFlagsMutuallyExclusive("input-file", "input-tree")

	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("root_name", rootCmd.Flags().Lookup("root-directory"))
	_ = viper.BindPFlag("hostname", rootCmd.Flags().Lookup("hostname"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("root_name", defaults.RootName)
	viper.SetDefault("data_dir", defaults.DataDir)
	viper.SetDefault("output_file", defaults.OutputFile)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("auto_reload_debounce", defaults.AutoReloadDebounce)
	viper.SetDefault("snapshots.enabled", defaults.Snapshots.Enabled)
	viper.SetDefault("snapshots.list_limit", defaults.Snapshots.ListLimit)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("ui.show_counts", defaults.UI.ShowCounts)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .webwalker/config.yaml (current directory)
		// 2. ~/.config/webwalker/config.yaml (user config)
		if _, err := os.Stat(paths.LocalConfigFile); err == nil {
			viper.SetConfigFile(paths.LocalConfigFile)
		} else {
			viper.AddConfigPath(paths.UserConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if writeErr := config.WriteDefaultConfig(paths.LocalConfigFile); writeErr == nil {
				viper.SetConfigFile(paths.LocalConfigFile)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// configFilePath is the file "config set" edits.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return paths.LocalConfigFile
}

// setupLogging enables the debug log when asked for and returns its cleanup.
func setupLogging(cmd *cobra.Command) func() {
	debug, _ := cmd.Flags().GetBool("debug")
	if !debug && os.Getenv("WEBWALKER_DEBUG") == "" {
		return func() {}
	}
	cleanup, err := log.InitWithTeaLog(paths.DebugLogPath(), "webwalker")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: debug log disabled: %v\n", err)
		return func() {}
	}
	return cleanup
}

// resources are the long-lived dependencies of a run.
type resources struct {
	tracing *tracing.Provider
	db      *sqlite.DB
}

func openResources() (*resources, error) {
	provider, err := tracing.NewProvider(tracing.FromAppConfig(cfg.Tracing))
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	r := &resources{tracing: provider}

	if cfg.Snapshots.Enabled {
		path := cfg.SnapshotPath()
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			r.close()
			return nil, fmt.Errorf("creating snapshot directory: %w", err)
		}
		db, err := sqlite.NewDB(path)
		if err != nil {
			r.close()
			return nil, fmt.Errorf("opening snapshot store: %w", err)
		}
		r.db = db
	}
	return r, nil
}

func (r *resources) snapshots() domain.SnapshotRepository {
	if r.db == nil {
		return nil
	}
	return r.db.SnapshotRepository()
}

func (r *resources) close() {
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			log.ErrorErr(log.CatStore, "closing snapshot store", err)
		}
	}
	if err := r.tracing.Shutdown(context.Background()); err != nil {
		log.ErrorErr(log.CatSession, "shutting down tracing", err)
	}
}

func runApp(cmd *cobra.Command, _ []string) error {
	cleanup := setupLogging(cmd)
	defer cleanup()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.AutoReload = false
	}

	res, err := openResources()
	if err != nil {
		return err
	}
	defer res.close()

	inputFile, _ := cmd.Flags().GetString("input-file")
	inputTree, _ := cmd.Flags().GetString("input-tree")
	outputFile, _ := cmd.Flags().GetString("output-file")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sess, err := session.Open(ctx, session.Options{
		RootName:   cfg.RootName,
		InputFile:  inputFile,
		InputTree:  inputTree,
		DataDir:    cfg.DataDir,
		OutputFile: cfg.OutputFile,
		Hostname:   cfg.Hostname,
		Tracer:     res.tracing.Tracer(),
		Snapshots:  res.snapshots(),
	})
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}

	if outputFile != "" {
		return export(ctx, cmd, sess, outputFile)
	}
	return runNavigator(ctx, sess)
}

// export writes the tree once and exits.
func export(ctx context.Context, cmd *cobra.Command, sess *session.Session, outputFile string) error {
	out := cmd.OutOrStdout()
	for _, w := range sess.Warnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	saved, err := sess.Save(ctx, outputFile, "export")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %d directories to %s\n", sess.Forest().Len(), saved.Path)
	if saved.SnapshotID != "" {
		fmt.Fprintf(out, "Snapshot %.8s\n", saved.SnapshotID)
	}
	return nil
}

func runNavigator(ctx context.Context, sess *session.Session) error {
	var changes <-chan struct{}
	if cfg.AutoReload && sess.InputPath() != "" {
		w, err := watcher.New(watcher.Config{Path: sess.InputPath(), DebounceDur: cfg.AutoReloadDebounce})
		if err != nil {
			log.ErrorErr(log.CatWatcher, "auto reload disabled", err)
		} else if changes, err = w.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "auto reload disabled", err)
			_ = w.Stop()
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	zone.NewGlobal()
	model := navigator.New(ctx, navigator.Options{
		Session:       sess,
		Changes:       changes,
		ShowCounts:    cfg.UI.ShowCounts,
		MarkdownStyle: cfg.UI.MarkdownStyle,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
