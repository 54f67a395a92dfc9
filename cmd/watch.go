package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"stubgen/pkg/watcher"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [dump-file-or-directory...]",
	Short: "Regenerate stubs whenever declaration dumps change",
	Long: `Watch the declaration dump sources and regenerate the stub file when
any dump changes. Changes are debounced so a batch export of dumps
produces a single regeneration.

Watch mode writes to a file, never to stdout, and runs until interrupted.

Examples:
  # Regenerate stubs.pyi whenever a dump under dumps/ changes
  stubgen watch --output stubs.pyi dumps/

  # Use the sources and output from .stubgen.yaml
  stubgen watch`,
	RunE: runWatch,
}

var (
	watchConfigPath string
	watchRoot       string
	watchOutput     string
	watchExclude    []string
	watchDebounce   time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchConfigPath, "config", "c", configFileName, "Project configuration file")
	watchCmd.Flags().StringVar(&watchRoot, "root-namespace", "", "Root namespace stripped from qualified names (overrides config)")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Stub file to rewrite on changes")
	watchCmd.Flags().StringSliceVar(&watchExclude, "exclude", nil, "Dump base-name patterns to skip")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Quiet period before regenerating")
}

func runWatch(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(watchConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("root-namespace") {
		config.RootNamespace = watchRoot
	}
	if cmd.Flags().Changed("output") {
		config.Output = watchOutput
	}
	config.Exclude = append(config.Exclude, watchExclude...)

	if config.Output == "" || config.Output == "-" {
		return fmt.Errorf("watch mode requires an output file (--output)")
	}

	patterns := sourcePatterns(args, config)
	if len(patterns) == 0 {
		return fmt.Errorf("no dump sources given (arguments or sources in %s)", watchConfigPath)
	}

	regenerate := func() {
		sources, err := findDumpFiles(patterns, config.Exclude)
		if err != nil {
			slog.Error("failed to collect dumps", "error", err)
			return
		}
		if len(sources) == 0 {
			slog.Warn("no declaration dumps found", "patterns", patterns)
			return
		}

		result, err := runPipeline(config, sources)
		if err != nil {
			slog.Error("stub generation failed", "error", err)
			return
		}
		if err := os.WriteFile(config.Output, []byte(result.Stubs), 0644); err != nil {
			slog.Error("failed to write stubs", "output", config.Output, "error", err)
			return
		}
		slog.Info("stubs regenerated", "output", config.Output, "dumps", result.Sources, "skipped", result.Skipped)
	}

	fmt.Printf("👀 Watching %d source pattern(s), writing to %s\n", len(patterns), config.Output)
	regenerate()

	w, err := watcher.New(watchDebounce, config.Exclude, func(changed []string) {
		slog.Info("dumps changed", "count", len(changed))
		regenerate()
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Watch(watchRoots(patterns)); err != nil {
		return fmt.Errorf("failed to watch sources: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Println("\n👋 Stopping watch")
	return nil
}

// watchRoots maps source patterns to existing filesystem paths the watcher
// can register. Glob patterns fall back to their directory part.
func watchRoots(patterns []string) []string {
	var roots []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		path := pattern
		if _, err := os.Stat(path); err != nil {
			path = filepath.Dir(pattern)
		}
		if !seen[path] {
			seen[path] = true
			roots = append(roots, path)
		}
	}
	return roots
}
