// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "os"

const (
	// ConfigFileEnv names the environment variable holding the config file path.
	ConfigFileEnv = "LOCSTORE_CONFIGFILE"

	defaultConfigPath  = "./locstore.yaml"
	fallbackConfigPath = "./locstore.yml"
)

// configFilePath determines the config file path with the following precedence:
//  1. the --config flag
//  2. the LOCSTORE_CONFIGFILE environment variable
//  3. ./locstore.yaml, or ./locstore.yml when only that exists
func configFilePath(configFlag string) string {
	if configFlag != "" {
		return configFlag
	}

	if envVar := os.Getenv(ConfigFileEnv); envVar != "" {
		return envVar
	}

	if _, err := os.Stat(defaultConfigPath); os.IsNotExist(err) {
		if _, statErr := os.Stat(fallbackConfigPath); statErr == nil {
			return fallbackConfigPath
		}
	}

	return defaultConfigPath
}
