// Package cli wires the terminal browser and its one-shot subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"catalog-browser/internal/config"
	"catalog-browser/internal/display"
	"catalog-browser/internal/i18n"
	"catalog-browser/internal/repository"
	"catalog-browser/internal/service"
	"catalog-browser/internal/tui"
	"catalog-browser/pkg/httpclient"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// DebugLogPath is where --debug writes logs; the terminal belongs to the TUI.
const DebugLogPath = "catalog-browser-debug.log"

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command

	// Flags
	debug     bool
	lang      string
	prefsPath string
	noColor   bool

	// Built in setup unless injected
	source   tui.Source
	store    repository.Store
	bundle   *i18n.Bundle
	detector *i18n.Detector
	logFile  *os.File
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "browse",
		Short: "Browse trending and popular movies and TV shows",
		Long: `browse is a terminal catalog of movies and TV shows backed by TMDB.

Every row loads on its own, so a slow or failing list never blocks
the rest of the page. The display language is remembered between runs.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			lang, err := a.activeLanguage(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), a.source, a.detector, lang, a.tuiOptions()...)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+DebugLogPath+")")
	a.root.PersistentFlags().StringVar(&a.lang, "lang", "", "Display language for this run (e.g. es, fr)")
	a.root.PersistentFlags().StringVar(&a.prefsPath, "prefs", repository.DefaultPreferencesPath(), "Preferences file")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.rowCmd())
	a.root.AddCommand(a.overviewCmd())
	a.root.AddCommand(a.languagesCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "browse %s (commit: %s)\n", Version, Commit)
		},
	}
}

// setup builds the logger, bundle, store and data source.
func (a *App) setup() error {
	if err := a.setupLogging(); err != nil {
		return err
	}

	if a.bundle == nil {
		b, err := i18n.NewBundle(a.config.DefaultLanguage, a.config.SupportedLanguages)
		if err != nil {
			return fmt.Errorf("loading translations: %w", err)
		}
		a.bundle = b
	}
	i18n.SetDefault(a.bundle)

	if a.store == nil {
		fs := repository.NewFileStore(a.prefsPath)
		log.Debug().Str("path", fs.Path()).Msg("Using preferences file")
		a.store = fs
	}
	a.detector = i18n.NewDetector(a.bundle, a.store)

	if a.source == nil {
		client := httpclient.NewClient(a.config.RequestTimeout)
		a.source = service.NewTMDBService(client, a.config.TMDBAPIKeys, a.config.TMDBBaseURL, a.config.TMDBImageBase)
	}
	return nil
}

func (a *App) setupLogging() error {
	if !a.debug {
		log.Logger = zerolog.Nop()
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}
	a.logFile = f
	log.Logger = zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	log.Debug().Str("version", Version).Msg("debug logging enabled")
	return nil
}

// activeLanguage resolves the language of this run: --lang, then the stored
// preference, then the locale environment, then the configured default.
func (a *App) activeLanguage(ctx context.Context) (string, error) {
	if a.lang != "" {
		code := i18n.Normalize(a.lang)
		if !a.bundle.Supports(code) {
			return "", fmt.Errorf("%w: %q (supported: %v)", i18n.ErrUnsupportedLanguage, a.lang, a.bundle.Supported())
		}
		return code, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return a.detector.Detect(ctx, tui.ClientKey, localeFromEnv()), nil
}

// localeFromEnv returns the first set POSIX locale variable.
func localeFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func (a *App) styles() display.Styles {
	if a.noColor {
		return display.PlainStyles()
	}
	return display.DefaultStyles()
}

func (a *App) tuiOptions() []tui.Option {
	return []tui.Option{
		tui.WithTimeout(a.config.RequestTimeout),
		tui.WithStyles(a.styles()),
	}
}

func (a *App) fetchContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	timeout := a.config.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(parent, timeout)
}

// SetOutput redirects command output, for tests.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetArgs sets the command-line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Close releases the debug log file.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
