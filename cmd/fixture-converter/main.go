// Package main is the entry point for the fixture-converter CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the fixture-converter CLI.
var rootCmd = &cobra.Command{
	Use:   "fixture-converter",
	Short: "Convert XML API responses into JSON or YAML fixtures",
	Long: `fixture-converter turns directories of XML documents, such as recorded
REST API responses, into JSON (or YAML) files with a predictable shape:
attributes and child elements become object keys, repeated elements become
arrays, and plural container elements always hold arrays.

Use convert to process a directory and manifest to inspect the record of
earlier runs.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fixture-converter.yaml or ~/.config/fixture-converter/fixture-converter.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fixture-converter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fixture-converter"))
		}
	}

	viper.SetEnvPrefix("FIXTURE_CONVERTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
