// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// genconfig writes example configuration files built from the defaults.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/locstore/locstore/config"
	"codeberg.org/locstore/locstore/core/audit"
)

const (
	envOutputFile  = ".env.example"
	yamlOutputFile = "locstore.yaml.example"
	filePerm       = 0o644

	envFileHeader = `# locstore configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# locstore configuration (via configuration file)
#
# Copy this file to locstore.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
)

func main() {
	audit.SetDefaultLogger()

	var dir string

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: "Write example configuration files from the built-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return generate(dir)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "deploy", "directory to write the example files to")

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate configuration examples")
	}
}

func generate(dir string) error {
	cfg := &config.Config{}
	cfg.SetDefaults()

	yamlExample, err := yamlFile(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	files := []struct{ name, content string }{
		{envOutputFile, envFile(cfg)},
		{yamlOutputFile, yamlExample},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), filePerm); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		log.Warn().Str("path", path).Msg("Generated configuration example")
	}

	return nil
}

// envFile renders every env-tagged field of cfg as a commented assignment,
// grouped by section.
func envFile(cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	for i := range typ.NumField() {
		section := val.Field(i)
		if section.Kind() != reflect.Struct || typ.Field(i).Name == "Build" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", typ.Field(i).Name)

		sectionType := section.Type()
		for j := range sectionType.NumField() {
			tag, ok := sectionType.Field(j).Tag.Lookup("env")
			if !ok {
				continue
			}

			name, _, _ := strings.Cut(tag, ",")

			switch value := section.Field(j); {
			case value.Kind() == reflect.Slice:
				items := make([]string, value.Len())
				for k := range items {
					items[k] = fmt.Sprint(value.Index(k).Interface())
				}

				fmt.Fprintf(&sb, "# %s=%s\n", name, strings.Join(items, ","))
			case value.Kind() == reflect.String && value.Len() == 0:
				fmt.Fprintf(&sb, "# %s=\n", name)
			default:
				fmt.Fprintf(&sb, "# %s=%v\n", name, value.Interface())
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// yamlFile renders the defaults as YAML with every value commented out,
// keeping section headers.
func yamlFile(cfg *config.Config) (string, error) {
	content, err := cfg.YAML()
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	for line := range strings.SplitSeq(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "store:") are treated as section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)

			continue
		}

		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	return sb.String(), nil
}
