package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ollyswanson/fixture-converter/internal/manifest"
	"github.com/ollyswanson/fixture-converter/pkg/types"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect the conversion manifest",
	Long: `Manifest reads the SQLite database written by convert --manifest. It
records the outcome of the last conversion attempt for every source file.`,
}

// --- list subcommand ---

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions",
	RunE:  runManifestList,
}

func runManifestList(cmd *cobra.Command, args []string) error {
	store, err := openManifest(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatManifestList(os.Stdout, records, jsonOutput)
}

func formatManifestList(w io.Writer, records []types.ConversionRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-30s  %-9s  %-20s  %s\n", "Document", "Status", "Converted", "Error")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, r := range records {
		fmt.Fprintf(w, "%-30s  %-9s  %-20s  %s\n",
			truncate(r.ID, 30), r.Status, r.ConvertedAt.Local().Format("2006-01-02 15:04:05"), r.Error)
	}

	fmt.Fprintf(w, "\n%d documents\n", len(records))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// --- export subcommand ---

var manifestExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all manifest records as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openManifest(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.ExportYAML(context.Background(), os.Stdout)
	},
}

func openManifest(cmd *cobra.Command) (*manifest.Store, error) {
	path, _ := cmd.Flags().GetString("manifest")
	if path == "" {
		path = viper.GetString("convert.manifest")
	}
	if path == "" {
		return nil, fmt.Errorf("no manifest configured: pass --manifest or set convert.manifest")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	return manifest.Open(path)
}

func init() {
	manifestCmd.PersistentFlags().String("manifest", "", "SQLite manifest path (default: convert.manifest from config)")
	manifestListCmd.Flags().Bool("json", false, "output records as JSON")

	manifestCmd.AddCommand(manifestListCmd)
	manifestCmd.AddCommand(manifestExportCmd)

	rootCmd.AddCommand(manifestCmd)
}
