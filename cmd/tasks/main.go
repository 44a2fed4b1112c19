package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	sqlitedb "github.com/agalitsyn/sqlite"
	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/tasks-cli/internal/app"
	"github.com/agalitsyn/tasks-cli/internal/model"
	"github.com/agalitsyn/tasks-cli/internal/storage/jsonfile"
	storagesqlite "github.com/agalitsyn/tasks-cli/internal/storage/sqlite"
	"github.com/agalitsyn/tasks-cli/internal/storage/sqlite/migrations"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := ParseFlags()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	logOpts := []lgr.Option{lgr.LevelBraces}
	if cfg.Debug {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec)
	}
	lgr.Setup(logOpts...)

	if cfg.Debug {
		lgr.Printf("[DEBUG] running with config")
		fmt.Fprintln(os.Stdout, cfg.String())
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	if cfg.Command == "" {
		fmt.Fprintln(os.Stderr, "Error: command required.")
		flag.Usage()
		return 1
	}

	storage, cleanup, err := openStorage(cfg)
	if err != nil {
		lgr.Printf("[ERROR] could not open storage: %v", err)
		return 1
	}
	defer cleanup()

	a := app.New(os.Stdout, storage)
	ctx := context.Background()

	switch cfg.Command {
	case "add":
		if strings.TrimSpace(cfg.Description) == "" {
			fmt.Fprintln(os.Stderr, "Error: Description required for add command.")
			return 1
		}
		err = a.AddTask(ctx, cfg.Description, cfg.DueDate, model.ParsePriority(cfg.Priority), cfg.Category)
	case "list":
		err = a.ListTasks(ctx, model.SortBy(cfg.SortBy))
	case "complete":
		if cfg.ID <= 0 {
			fmt.Fprintln(os.Stderr, "Error: Valid ID required for complete command.")
			return 1
		}
		err = a.CompleteTask(ctx, cfg.ID)
	case "delete":
		if cfg.ID <= 0 {
			fmt.Fprintln(os.Stderr, "Error: Valid ID required for delete command.")
			return 1
		}
		err = a.DeleteTask(ctx, cfg.ID)
	case "clear":
		err = a.ClearTasks(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cfg.Command)
		flag.Usage()
		return 1
	}
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		return 1
	}
	return 0
}

func openStorage(cfg Config) (model.TaskRepository, func(), error) {
	switch cfg.Storage {
	case "sqlite":
		db, err := sqlitedb.Connect(cfg.File)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to %s: %w", cfg.File, err)
		}
		if err := sqlitedb.MigrateUp(db, migrations.FS); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("could not migrate %s: %w", cfg.File, err)
		}
		return storagesqlite.NewTaskStorage(db), func() { db.Close() }, nil
	case "json":
		return jsonfile.New(cfg.File), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
