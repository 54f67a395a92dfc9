package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"stubgen/pkg/generator"
	"stubgen/pkg/hdr"
	"stubgen/pkg/watcher"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] [dump-file-or-directory...]",
	Short: "Generate typed stubs from declaration dumps",
	Long: `Generate typed interface stubs from header-parser declaration dumps.

Each dump file holds the ordered declaration records and the namespace set
the native header parser produced for one source. Qualified names are
resolved against the namespace set, the stream is grouped into functions,
classes and enum value classes, and the stubs are written out in input
order.

Sources come from the command line or from the project configuration file.
Without --output the stub text goes to stdout.

Examples:
  # Generate stubs for one dump to stdout
  stubgen generate dumps/core.json

  # Generate stubs for a whole dump directory into a file
  stubgen generate --output stubs.pyi dumps/

  # Use the sources listed in .stubgen.yaml, with device variants
  stubgen generate --device-variants`,
	RunE: runGenerate,
}

var (
	generateConfigPath string
	generateRoot       string
	generateOutput     string
	generateExclude    []string
	unifiedVariants    bool
	deviceVariants     bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateConfigPath, "config", "c", configFileName, "Project configuration file")
	generateCmd.Flags().StringVar(&generateRoot, "root-namespace", "", "Root namespace stripped from qualified names (overrides config)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write stubs to this file instead of stdout")
	generateCmd.Flags().StringSliceVar(&generateExclude, "exclude", nil, "Dump base-name patterns to skip")
	generateCmd.Flags().BoolVar(&unifiedVariants, "unified-variants", false, "Request unified-memory declaration variants")
	generateCmd.Flags().BoolVar(&deviceVariants, "device-variants", false, "Request device declaration variants")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	config, err := resolveGenerateConfig(cmd, args)
	if err != nil {
		return err
	}

	sources, err := findDumpFiles(sourcePatterns(args, config), config.Exclude)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no declaration dumps found")
	}

	result, err := runPipeline(config, sources)
	if err != nil {
		return err
	}

	if config.Output == "" || config.Output == "-" {
		fmt.Print(result.Stubs)
		return nil
	}

	fmt.Printf("📂 Found %d declaration dumps\n", len(sources))
	if err := os.WriteFile(config.Output, []byte(result.Stubs), 0644); err != nil {
		return fmt.Errorf("failed to write stubs: %w", err)
	}

	fmt.Printf("\n📊 Summary:\n")
	fmt.Printf("  Dumps processed: %d\n", result.Sources)
	fmt.Printf("  Dumps skipped (empty): %d\n", result.Skipped)
	fmt.Printf("\n🎉 Stubs written to %s\n", config.Output)
	return nil
}

// resolveGenerateConfig loads the project file and applies flag overrides.
func resolveGenerateConfig(cmd *cobra.Command, args []string) (*Config, error) {
	config, err := loadConfig(generateConfigPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("root-namespace") {
		config.RootNamespace = generateRoot
	}
	if cmd.Flags().Changed("output") {
		config.Output = generateOutput
	}
	if cmd.Flags().Changed("unified-variants") {
		config.Parser.UnifiedVariants = unifiedVariants
	}
	if cmd.Flags().Changed("device-variants") {
		config.Parser.DeviceVariants = deviceVariants
	}
	config.Exclude = append(config.Exclude, generateExclude...)

	return config, nil
}

// sourcePatterns prefers command-line arguments over configured sources.
func sourcePatterns(args []string, config *Config) []string {
	if len(args) > 0 {
		return args
	}
	return config.Sources
}

// runPipeline wires the dump-backed parser into the generator service.
func runPipeline(config *Config, sources []string) (*generator.Result, error) {
	parser := hdr.NewDumpParser(hdr.Options{
		UnifiedVariants: config.Parser.UnifiedVariants,
		DeviceVariants:  config.Parser.DeviceVariants,
	})
	return generator.New(parser, config.RootNamespace).Run(sources)
}

// findDumpFiles expands source patterns (files, directories or globs) into
// an ordered list of dump files, dropping excluded base names.
func findDumpFiles(patterns, exclude []string) ([]string, error) {
	excludeGlobs := make([]glob.Glob, 0, len(exclude))
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
		excludeGlobs = append(excludeGlobs, g)
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if seen[path] || !watcher.IsDump(path) {
			return
		}
		base := filepath.Base(path)
		for _, g := range excludeGlobs {
			if g.Match(base) {
				return
			}
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, pattern := range patterns {
		info, err := os.Stat(pattern)
		switch {
		case err == nil && info.IsDir():
			walkErr := filepath.Walk(pattern, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() {
					add(path)
				}
				return nil
			})
			if walkErr != nil {
				return nil, walkErr
			}
		case err == nil:
			add(pattern)
		default:
			matches, globErr := filepath.Glob(pattern)
			if globErr != nil {
				return nil, fmt.Errorf("bad source pattern %q: %w", pattern, globErr)
			}
			for _, match := range matches {
				add(match)
			}
		}
	}

	return files, nil
}
