// ABOUTME: XDG-based config directory resolution for the hellopage CLI.
// ABOUTME: Checks XDG_CONFIG_HOME, falls back to ~/.config/hellopage.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultConfigDir returns the directory holding config.yaml and config.env.
func defaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hellopage"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", "hellopage"), nil
}
