package cmd

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/combobox/internal/app"
	"github.com/zhubert/combobox/internal/combobox"
	"github.com/zhubert/combobox/internal/config"
	"github.com/zhubert/combobox/internal/datasource"
	"github.com/zhubert/combobox/internal/errors"
	"github.com/zhubert/combobox/internal/logger"
	"github.com/zhubert/combobox/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// Flags that override the loaded config. Only flags the user actually
// passed are applied.
var (
	configPath  string
	dataFile    string
	initValue   string
	label       string
	placeholder string
	filterMode  string
	valuePath   string
	labelPath   string
	textPath    string
	maxVisible  int
	width       int
	themeName   string
	noToggle    bool
	remember    bool
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "combobox",
	Short: "Autocomplete combobox demo for the terminal",
	Long: `combobox runs an accessible autocomplete picker in the terminal.
Type to filter the list, use the arrow keys or the mouse to move through it,
and press enter to select. Records come from a YAML file (the US states by
default) and the value, label and text fields are picked with dotted paths.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.combobox/config.json)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "YAML file with the records to pick from")
	rootCmd.PersistentFlags().StringVar(&initValue, "value", "", "Initial value")
	rootCmd.PersistentFlags().StringVar(&valuePath, "value-path", "", "Dotted path to the bound value (default \"id\")")
	rootCmd.PersistentFlags().StringVar(&labelPath, "label-path", "", "Dotted path to the option label (default \"name\")")
	rootCmd.PersistentFlags().StringVar(&textPath, "text-path", "", "Dotted path to the text written on select (defaults to the label)")

	rootCmd.Flags().StringVar(&label, "label", "", "Caption shown above the field")
	rootCmd.Flags().StringVar(&placeholder, "placeholder", "", "Text shown while the field is empty")
	rootCmd.Flags().StringVar(&filterMode, "filter", "", "Filter mode: "+modeList())
	rootCmd.Flags().IntVar(&maxVisible, "max-visible", 0, "Rows shown while the list is open")
	rootCmd.Flags().IntVar(&width, "width", 0, "Width of the field in cells")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Color theme")
	rootCmd.Flags().BoolVar(&noToggle, "no-toggle", false, "Disable the toggle button")
	rootCmd.Flags().BoolVar(&remember, "remember", false, "Start on the most recent selection and save new ones")
}

func modeList() string {
	modes := datasource.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, " or ")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("combobox %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("combobox %s\n", version)
}

// loadConfig reads the config file and layers the flags the user passed
// on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	applyFlags(cmd, cfg)

	if cfg.Theme != "" && !ui.IsTheme(cfg.Theme) {
		return nil, fmt.Errorf("unknown theme %q (available: %v)", cfg.Theme, ui.ThemeNames())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger.Debug("config loaded from %s", cfg.Path())
	return cfg, nil
}

// loadRecords loads the data file, adding a hint when it does not exist.
func loadRecords(path string) ([]combobox.Record, error) {
	records, err := datasource.Load(path)
	if err != nil {
		if errors.GetKind(err) == errors.KindNotFound {
			return nil, fmt.Errorf("%w\n\nPass --data with an existing YAML file, or leave it out for the built-in states", err)
		}
		return nil, fmt.Errorf("error loading data: %w", err)
	}
	logger.Info("loaded %d records from %s", len(records), sourceName(path))
	return records, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("data") {
		cfg.DataFile = dataFile
	}
	if changed("value") {
		cfg.Value = initValue
	}
	if changed("value-path") {
		cfg.ValuePath = valuePath
	}
	if changed("label-path") {
		cfg.LabelPath = labelPath
	}
	if changed("text-path") {
		cfg.TextPath = textPath
	}
	if changed("label") {
		cfg.Label = label
	}
	if changed("placeholder") {
		cfg.Placeholder = placeholder
	}
	if changed("filter") {
		cfg.FilterMode = filterMode
	}
	if changed("max-visible") {
		cfg.MaxVisible = maxVisible
	}
	if changed("width") {
		cfg.Width = width
	}
	if changed("theme") {
		cfg.SetTheme(themeName)
	}
	if changed("no-toggle") {
		cfg.ToggleDisabled = noToggle
	}
	if changed("remember") {
		cfg.RememberSelection = remember
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := logger.Init(logger.DefaultLogPath); err != nil {
		return fmt.Errorf("error opening log: %w", err)
	}
	defer logger.Close()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	records, err := loadRecords(cfg.DataFile)
	if err != nil {
		return err
	}

	m, err := app.New(cfg, records, version)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		logger.Error("app exited: %v", err)
		return fmt.Errorf("error running app (log: %s): %w", logger.Path(), err)
	}
	return nil
}

func sourceName(path string) string {
	if path == "" {
		return datasource.DefaultSource
	}
	return path
}
