// Package main provides the CLI entrypoint for namehunt.
package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/namehunt/internal/checker"
	"github.com/verte-zerg/namehunt/internal/config"
	"github.com/verte-zerg/namehunt/internal/generator"
	"github.com/verte-zerg/namehunt/internal/hunter"
	"github.com/verte-zerg/namehunt/internal/model"
	"github.com/verte-zerg/namehunt/internal/report"
	"github.com/verte-zerg/namehunt/internal/store"
	"github.com/verte-zerg/namehunt/internal/tui"
)

const (
	defaultLength = 5
	defaultURL    = "https://github.com"

	minLength = 3
	maxLength = 39
)

var (
	huntLength        int
	huntNoDigits      bool
	huntExcludeDigits string
	huntURL           string
	huntVerbose       bool

	exportOut string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "namehunt",
		Short:         "TUI username availability hunter",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runHuntCmd,
	}

	rootCmd.Flags().IntVar(&huntLength, "length", defaultLength, "candidate length (3-39)")
	rootCmd.Flags().BoolVar(&huntNoDigits, "no-digits", false, "generate candidates from letters only")
	rootCmd.Flags().StringVar(&huntExcludeDigits, "exclude-digits", "", "digits to exclude from candidates (e.g. \"013\")")
	rootCmd.Flags().StringVar(&huntURL, "url", defaultURL, "lookup base URL; candidates are appended as a path segment")
	rootCmd.Flags().BoolVar(&huntVerbose, "verbose", false, "also log taken candidates")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

func runHuntCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "length", &huntLength, fileCfg.Hunt.Length)
	applyBoolConfig(cmd, "no-digits", &huntNoDigits, fileCfg.Hunt.NoDigits)
	applyStringConfig(cmd, "exclude-digits", &huntExcludeDigits, fileCfg.Hunt.ExcludeDigits)
	applyStringConfig(cmd, "url", &huntURL, fileCfg.Hunt.URL)
	applyBoolConfig(cmd, "verbose", &huntVerbose, fileCfg.Hunt.Verbose)

	cfg := model.Config{
		Length:           huntLength,
		ExcludeAllDigits: huntNoDigits,
		ExcludedDigits:   huntExcludeDigits,
		BaseURL:          strings.TrimRight(huntURL, "/"),
		Verbose:          huntVerbose,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	alphabet, err := generator.DeriveAlphabet(cfg.ExcludeAllDigits, cfg.ExcludedDigits)
	if err != nil {
		return fmt.Errorf("invalid generator configuration: %w", err)
	}

	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	sink := tui.NewSink()
	gen := generator.New(alphabet)
	chk := checker.New(cfg.BaseURL, sink)
	h := hunter.New(cfg, gen, chk, sink, hunter.DefaultTiming())

	model := tui.NewModel(cfg, st, h, sink)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show hunt history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	hunts, err := st.ListHunts(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list hunts: %w", err)
	}
	return report.RenderHistory(cmd.OutOrStdout(), hunts)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write found usernames to a text file",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", "found_usernames.txt", "output file path")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	n, err := st.ExportFound(context.Background(), exportOut)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d usernames to %s\n", n, exportOut); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# namehunt configuration
# Uncomment a value to enable it. CLI flags override config values.

[hunt]
# length = %d             # Candidate length (%d-%d)
# no-digits = false       # Generate candidates from letters only
# exclude-digits = ""     # Digits to exclude, e.g. "013"
# url = %q                # Lookup base URL
# verbose = false         # Also log taken candidates
`,
		defaultLength,
		minLength,
		maxLength,
		defaultURL,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Length < minLength || cfg.Length > maxLength {
		return fmt.Errorf("--length must be between %d and %d", minLength, maxLength)
	}
	for _, r := range cfg.ExcludedDigits {
		if r < '0' || r > '9' {
			return fmt.Errorf("--exclude-digits must contain only digits, got %q", r)
		}
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return fmt.Errorf("--url must not be empty")
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("--url is invalid: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("--url must include a scheme and host")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
