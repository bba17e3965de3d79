package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/caseflow/caseflow/pkg/config"
	"github.com/caseflow/caseflow/pkg/engine"
	"github.com/caseflow/caseflow/pkg/tui"
	"github.com/caseflow/caseflow/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-analyze a dataset directory whenever its tables change",
	Long: `Watch monitors every table file in the directory and re-runs the
analysis after a change settles. Press Ctrl-C to stop.

Example:
  caseflow watch ./exports --domain ecommerce`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr := config.NewManager()
	if err := mgr.Load(); err != nil {
		return err
	}
	cfg := mgr.Get()

	v, err := loadVocabulary(cfg)
	if err != nil {
		return err
	}

	dir := args[0]
	paths, err := tableFiles(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no table files (.csv, .xlsx) in %s", dir)
	}

	eng := engine.New(v)
	analyze := func() error {
		tables, err := readTables(paths)
		if err != nil {
			return err
		}
		result, err := eng.Analyze(ctx, filepath.Base(dir), tables)
		if err != nil {
			return err
		}
		tui.PrintResult(result)
		return nil
	}

	// Initial run before waiting for changes.
	if err := analyze(); err != nil {
		return err
	}

	w, err := watch.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	w.OnChange = func(path string) error {
		fmt.Printf("  %s changed, re-analyzing\n", filepath.Base(path))
		return analyze()
	}
	w.OnError = func(path string, err error) {
		fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
	}

	for _, p := range paths {
		if err := w.Watch(p); err != nil {
			return err
		}
	}

	fmt.Printf("  watching %d table(s) in %s\n", len(paths), dir)
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// tableFiles lists the dataset's table files in name order.
func tableFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
