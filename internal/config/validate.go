package config

import (
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/sdkdl/internal/messages"
)

// Validate ensures the config is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: "+messages.ConfigInvalidBaseURLFmt, ErrConfigValidation, c.BaseURL)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: "+messages.ConfigInvalidLogLevelFmt, ErrConfigValidation, c.LogLevel, err)
	}
	if strings.TrimSpace(c.SDK.Binary) == "" {
		return fmt.Errorf("%w: %s", ErrConfigValidation, messages.ConfigSDKBinaryRequired)
	}
	if strings.TrimSpace(c.SDK.RootEnv) == "" {
		return fmt.Errorf("%w: %s", ErrConfigValidation, messages.ConfigSDKRootEnvRequired)
	}
	return nil
}
