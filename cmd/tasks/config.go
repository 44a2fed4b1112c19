package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/agalitsyn/flagutils"

	"github.com/agalitsyn/tasks-cli/version"
)

const EnvPrefix = "TASKS"

const (
	defaultFile     = "tasks.json"
	defaultStorage  = "json"
	defaultPriority = "medium"
	defaultCategory = "General"
	defaultSortBy   = "id"
)

type Config struct {
	Command     string
	Description string
	DueDate     string
	Priority    string
	Category    string
	SortBy      string
	ID          int

	File    string
	Storage string
	NoColor bool
	Debug   bool

	Log struct {
		Level string
	}
}

func (c Config) String() string {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stdout, err)
		os.Exit(0)
	}
	return string(b)
}

// fileConfig holds defaults read from an optional TOML config file. Values
// are overridden by TASKS_* env vars, which are overridden by flags.
type fileConfig struct {
	File     string `toml:"file"`
	Storage  string `toml:"storage"`
	Priority string `toml:"priority"`
	Category string `toml:"category"`
	NoColor  bool   `toml:"no_color"`
}

func ParseFlags() (Config, error) {
	var cfg Config

	defaults := fileConfig{
		File:     defaultFile,
		Storage:  defaultStorage,
		Priority: defaultPriority,
		Category: defaultCategory,
	}
	configPath := findConfigFile(os.Args[1:])
	if configPath != "" {
		if _, err := toml.DecodeFile(configPath, &defaults); err != nil {
			return cfg, fmt.Errorf("could not parse config file %s: %w", configPath, err)
		}
	}

	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine = fs

	printVersion := fs.Bool("version", false, "Show version.")
	logLevel := fs.String("log-level", "info", "Log level (debug | info | warn | error).")
	fs.String("config", "", "Path to TOML config file.")

	fs.StringVar(&cfg.Command, "command", "", "Command (add | list | complete | delete | clear).")
	fs.StringVar(&cfg.Command, "c", "", "Command (shorthand).")
	fs.StringVar(&cfg.Description, "description", "", "Task description.")
	fs.StringVar(&cfg.Description, "d", "", "Task description (shorthand).")
	fs.StringVar(&cfg.DueDate, "due-date", "", "Due date (YYYY-MM-DD).")
	fs.StringVar(&cfg.Priority, "priority", defaults.Priority, "Priority (low | medium | high).")
	fs.StringVar(&cfg.Priority, "p", defaults.Priority, "Priority (shorthand).")
	fs.StringVar(&cfg.Category, "category", defaults.Category, "Task category.")
	fs.StringVar(&cfg.SortBy, "sort-by", defaultSortBy, "Sort list by (id | priority | due_date | category).")
	fs.StringVar(&cfg.SortBy, "s", defaultSortBy, "Sort list by (shorthand).")
	fs.IntVar(&cfg.ID, "id", 0, "Task ID.")
	fs.IntVar(&cfg.ID, "i", 0, "Task ID (shorthand).")
	fs.StringVar(&cfg.File, "file", defaults.File, "Path to the tasks file.")
	fs.StringVar(&cfg.Storage, "storage", defaults.Storage, "Storage backend (json | sqlite).")
	fs.BoolVar(&cfg.NoColor, "no-color", defaults.NoColor, "Disable colored output.")

	flagutils.Prefix = EnvPrefix
	flagutils.Parse()
	if err := fs.Parse(os.Args[1:]); err != nil {
		return cfg, err
	}

	cfg.Log.Level = *logLevel
	if cfg.Log.Level == "debug" {
		cfg.Debug = true
	}

	if *printVersion {
		fmt.Fprintln(os.Stdout, version.String())
		os.Exit(0)
	}

	return cfg, nil
}

// findConfigFile resolves the config file path before regular flag parsing,
// since it supplies defaults for the other flags. Precedence: --config flag,
// TASKS_CONFIG env, ./tasks.toml, <user config dir>/tasks/tasks.toml.
func findConfigFile(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-config" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "-config=") || strings.HasPrefix(arg, "--config="):
			if _, v, ok := strings.Cut(arg, "="); ok {
				return v
			}
		}
	}
	if v := os.Getenv(EnvPrefix + "_CONFIG"); v != "" {
		return v
	}
	if _, err := os.Stat("tasks.toml"); err == nil {
		return "tasks.toml"
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "tasks", "tasks.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
