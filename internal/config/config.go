package config

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/multiselect/internal/app"
	"github.com/atomicstack/multiselect/internal/stories"
	"github.com/atomicstack/multiselect/internal/theme"
	"github.com/atomicstack/multiselect/internal/ui"
	"github.com/atomicstack/multiselect/internal/ui/state"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envStory       = "MULTISELECT_STORY"
	envItems       = "MULTISELECT_ITEMS"
	envItemsFile   = "MULTISELECT_ITEMS_FILE"
	envWatch       = "MULTISELECT_WATCH"
	envMaxSelected = "MULTISELECT_MAX_SELECTED"
	envMatcher     = "MULTISELECT_MATCHER"
	envWidth       = "MULTISELECT_WIDTH"
	envHeight      = "MULTISELECT_HEIGHT"
	envShowFooter  = "MULTISELECT_FOOTER"
	envVerbose     = "MULTISELECT_VERBOSE"
	envTrace       = "MULTISELECT_TRACE"
	envLogFile     = "MULTISELECT_LOG_FILE"
	envConfigFile  = "MULTISELECT_CONFIG"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("multiselect", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	story := fs.String("story", envOrDefault(env, envStory, stories.DefaultStory), "story to run")
	listStories := fs.Bool("list-stories", false, "print the available stories and exit")
	items := fs.Int("items", envOrInt(env, envItems, 0), "replace the story's items with this many generated ones")
	itemsFile := fs.String("items-file", envOrDefault(env, envItemsFile, ""), "load items from a YAML, JSON or text file")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload -items-file when it changes")
	maxSelected := fs.Int("max-selected", envOrInt(env, envMaxSelected, -1), "selection cap (0 is unlimited, -1 keeps the story's value)")
	matcher := fs.String("matcher", envOrDefault(env, envMatcher, ""), "filter matcher: substring or fuzzy")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "log selection changes at debug level")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	configFile := fs.String("config", envOrDefault(env, envConfigFile, ""), "YAML or TOML file with messages and sizing")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(*story) == "" {
		*story = stories.DefaultStory
	}
	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	var overrides app.Overrides
	if *configFile != "" {
		loaded, err := LoadFile(*configFile)
		if err != nil {
			return Config{}, err
		}
		overrides = loaded
	}

	cfg := Config{
		App: app.Config{
			Story:       *story,
			ListStories: *listStories,
			Items:       *items,
			ItemsFile:   *itemsFile,
			Watch:       *watch,
			MaxSelected: *maxSelected,
			Matcher:     *matcher,
			Width:       *width,
			Height:      *height,
			ShowFooter:  *footer,
			Verbose:     *verbose,
			Overrides:   overrides,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"story":       *story,
			"listStories": strconv.FormatBool(*listStories),
			"items":       strconv.Itoa(*items),
			"itemsFile":   *itemsFile,
			"watch":       strconv.FormatBool(*watch),
			"maxSelected": strconv.Itoa(*maxSelected),
			"matcher":     *matcher,
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"verbose":     strconv.FormatBool(*verbose),
			"logFile":     *logFile,
			"config":      *configFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// LoadFile reads presentation overrides from a YAML (.yaml, .yml) or TOML
// (.toml) file. Unknown keys are rejected.
func LoadFile(path string) (app.Overrides, error) {
	var out app.Overrides
	data, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&out); err != nil {
			return app.Overrides{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if len(bytes.TrimSpace(data)) == 0 {
			return out, nil
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&out); err != nil {
			return app.Overrides{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return out, fmt.Errorf("config %s: unsupported extension %q", path, filepath.Ext(path))
	}
	return out, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects option combinations the program cannot honour.
func Validate(cfg Config) error {
	a := cfg.App
	if a.ListStories {
		return nil
	}
	if _, ok := stories.BuildRegistry().Find(a.Story); !ok {
		return fmt.Errorf("unknown story %q", a.Story)
	}
	if a.Items < 0 {
		return fmt.Errorf("items must be >= 0 (got %d)", a.Items)
	}
	if a.Items > 0 && a.ItemsFile != "" {
		return fmt.Errorf("-items and -items-file are mutually exclusive")
	}
	if a.Watch && a.ItemsFile == "" {
		return fmt.Errorf("-watch requires -items-file")
	}
	if a.MaxSelected < -1 {
		return fmt.Errorf("max-selected must be >= -1 (got %d)", a.MaxSelected)
	}
	if a.Matcher != "" {
		if _, ok := state.MatcherByName(a.Matcher); !ok {
			return fmt.Errorf("unknown matcher %q", a.Matcher)
		}
	}
	return validateOverrides(a.Overrides)
}

func validateOverrides(o app.Overrides) error {
	sizes := []struct {
		name  string
		value int
	}{
		{"item_height", o.ItemHeight},
		{"select_all_height", o.SelectAllHeight},
		{"list_height", o.ListHeight},
		{"selected_list_height", o.SelectedListHeight},
		{"async_filter_threshold", o.AsyncFilterThreshold},
	}
	for _, s := range sizes {
		if s.value < 0 {
			return fmt.Errorf("%s must be >= 0 (got %d)", s.name, s.value)
		}
	}
	if o.ResponsiveHeight != "" {
		if _, err := ui.ParseResponsiveHeight(o.ResponsiveHeight); err != nil {
			return err
		}
	}
	if o.Matcher != "" {
		if _, ok := state.MatcherByName(o.Matcher); !ok {
			return fmt.Errorf("unknown matcher %q", o.Matcher)
		}
	}
	if o.Style != "" {
		if _, ok := theme.Lookup(o.Style); !ok {
			return fmt.Errorf("unknown style %q (available: %s)", o.Style, strings.Join(theme.Names(), ", "))
		}
	}
	if _, err := app.ParseClearScope(o.ClearScope); err != nil {
		return err
	}
	return nil
}
