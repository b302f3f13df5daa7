package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ollyswanson/fixture-converter/internal/convert"
	"github.com/ollyswanson/fixture-converter/internal/manifest"
	"github.com/ollyswanson/fixture-converter/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-dir> <output-dir>",
	Short: "Convert every XML file in a directory to JSON or YAML",
	Long: `Convert reads each *.xml file directly inside input-dir and writes
<name>.json (or <name>.yaml) to output-dir. Existing outputs are skipped
unless --force is given; with --manifest, documents whose source has not
changed since the last successful run are skipped instead.

A failed document is reported and the batch continues, unless --fail-fast
is set. The command exits non-zero when any document failed.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

// convertFlags maps convert flags to their viper keys.
var convertFlags = map[string]string{
	"ignore-attribute": "convert.ignore_attributes",
	"list-detection":   "convert.list_detection",
	"format":           "convert.format",
	"indent":           "convert.indent",
	"sort-keys":        "convert.sort_keys",
	"root":             "convert.root",
	"force":            "convert.force",
	"fail-fast":        "convert.fail_fast",
	"jobs":             "convert.jobs",
	"manifest":         "convert.manifest",
}

func init() {
	defaults := types.DefaultEngineConfig()

	convertCmd.Flags().StringSlice("ignore-attribute", defaults.IgnoreAttributes, "attribute name to leave out of the output (repeatable)")
	convertCmd.Flags().String("list-detection", string(defaults.ListDetection), "list detection strategy: none, stem, suffix, or inflection")
	convertCmd.Flags().String("format", string(types.FormatJSON), "output format: json or yaml")
	convertCmd.Flags().String("indent", "  ", "JSON indentation unit (empty for compact output)")
	convertCmd.Flags().Bool("sort-keys", false, "emit object keys in sorted order instead of document order")
	convertCmd.Flags().String("root", "", "write only the value under this root element (e.g. tsResponse)")
	convertCmd.Flags().Bool("force", false, "convert even when the output exists or the source is unchanged")
	convertCmd.Flags().Bool("fail-fast", false, "stop at the first document that fails")
	convertCmd.Flags().Int("jobs", 1, "number of documents converted concurrently")
	convertCmd.Flags().String("manifest", "", "SQLite manifest recording conversions (enables incremental runs)")

	for flag, key := range convertFlags {
		if err := viper.BindPFlag(key, convertCmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}

	rootCmd.AddCommand(convertCmd)
}

// conversionConfig resolves flags, environment and config file into one
// ConversionConfig.
func conversionConfig(inputDir, outputDir string) types.ConversionConfig {
	return types.ConversionConfig{
		EngineConfig: types.EngineConfig{
			IgnoreAttributes: viper.GetStringSlice("convert.ignore_attributes"),
			ListDetection:    types.ListDetection(normalize(viper.GetString("convert.list_detection"))),
		},
		OutputConfig: types.OutputConfig{
			Format:   types.OutputFormat(normalize(viper.GetString("convert.format"))),
			Indent:   viper.GetString("convert.indent"),
			SortKeys: viper.GetBool("convert.sort_keys"),
			Root:     viper.GetString("convert.root"),
		},
		InputDir:  inputDir,
		OutputDir: outputDir,
		Force:     viper.GetBool("convert.force"),
		FailFast:  viper.GetBool("convert.fail_fast"),
		Jobs:      viper.GetInt("convert.jobs"),
		Manifest:  viper.GetString("convert.manifest"),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig(args[0], args[1])
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	conv, err := convert.NewXMLConverter(cfg.EngineConfig, cfg.OutputConfig)
	if err != nil {
		return err
	}

	opts := convert.Options{
		Force:    cfg.Force,
		FailFast: cfg.FailFast,
		Jobs:     cfg.Jobs,
	}
	if cfg.Manifest != "" {
		store, err := manifest.Open(cfg.Manifest)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Tracker = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := convert.ConvertDir(ctx, conv, cfg, opts, newStatusWriter(os.Stdout))
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}
