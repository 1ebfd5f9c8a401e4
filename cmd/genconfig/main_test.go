// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/locstore/locstore/config"
)

func TestEnvFile(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.SetDefaults()

	out := envFile(cfg)

	assert.Contains(t, out, "## Store\n")
	assert.Contains(t, out, "# LOCSTORE_DEFAULT_LOCALE=en\n")
	assert.Contains(t, out, "# LOCSTORE_FORMAT=yaml\n")
	assert.Contains(t, out, "# LOCSTORE_LOG_OUTPUTS=/dev/stderr\n")
	assert.Contains(t, out, "# LOCSTORE_STRICT_MISSING_KEYS=false\n")
	assert.NotContains(t, out, "Build")
}

func TestYAMLFile(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.SetDefaults()

	out, err := yamlFile(cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "\nstore:\n")
	assert.Contains(t, out, "  # defaultLocale: en\n")
	assert.Contains(t, out, "\ncache:\n")
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "deploy")
	require.NoError(t, generate(dir))

	for _, name := range []string{envOutputFile, yamlOutputFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
