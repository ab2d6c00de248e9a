package config

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/sdkdl/internal/messages"
)

// homeDir is a seam for tests.
var homeDir = homedir.Dir

// DefaultPath returns ~/.config/sdkdl/config.toml.
func DefaultPath() (string, error) {
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveHomeDirFmt, err)
	}
	return filepath.Join(home, ".config", "sdkdl", "config.toml"), nil
}
