// Package config reads filerender's settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/raphaelreyna/filerender/pkg/escaper"
)

const defaultPort = "27182"

type Config struct {
	// SearchPaths from FILERENDER_PATHS, separated by os.PathListSeparator.
	SearchPaths []string
	// Encoding from FILERENDER_ENCODING.
	Encoding string
	// GuardSize from FILERENDER_GUARD_SIZE.
	GuardSize int
	// Port from PORT.
	Port string
}

func GrabConfigFromEnv() (*Config, error) {
	var c Config

	// Grab search paths
	if paths := os.Getenv("FILERENDER_PATHS"); paths != "" {
		c.SearchPaths = filepath.SplitList(paths)
	}

	// Grab encoding
	c.Encoding = os.Getenv("FILERENDER_ENCODING")
	if c.Encoding != "" && !escaper.Supported(c.Encoding) {
		return nil, fmt.Errorf("FILERENDER_ENCODING: unsupported encoding %q", c.Encoding)
	}

	// Grab guard size
	if size := os.Getenv("FILERENDER_GUARD_SIZE"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return nil, fmt.Errorf("FILERENDER_GUARD_SIZE: %w", err)
		}
		c.GuardSize = n
	}

	// Grab port
	c.Port = os.Getenv("PORT")

	return &c, nil
}

func DefaultedConfig() (*Config, error) {
	c, err := GrabConfigFromEnv()
	if err != nil {
		return nil, err
	}

	// Check Encoding
	if c.Encoding == "" {
		c.Encoding = escaper.DefaultEncoding
	}

	// Check Port
	if c.Port == "" {
		c.Port = defaultPort
	}

	return c, nil
}

// PathsAfter returns a new slice holding flagPaths followed by the search
// paths from the environment.
func (c *Config) PathsAfter(flagPaths []string) []string {
	paths := make([]string, 0, len(flagPaths)+len(c.SearchPaths))
	paths = append(paths, flagPaths...)
	return append(paths, c.SearchPaths...)
}
