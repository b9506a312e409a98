package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/raphaelreyna/filerender/cmd/filerender/pkg/config"
	"github.com/raphaelreyna/filerender/pkg/escape"
	"github.com/raphaelreyna/filerender/pkg/renderer"
)

var perm = os.FileMode(0755)

func (c *Cmd) run(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	err = c.validate()
	if err != nil {
		return fmt.Errorf("error validating render command: %w", err)
	}

	conf, err := config.DefaultedConfig()
	if err != nil {
		return fmt.Errorf("error reading config from environment: %w", err)
	}

	data, err := c.data()
	if err != nil {
		return err
	}

	r, err := renderer.New(&renderer.Config{
		SearchPaths:    conf.PathsAfter(c.paths),
		EscapeEncoding: conf.Encoding,
		GuardSize:      conf.GuardSize,
		Stdout:         cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("error creating renderer: %w", err)
	}

	var (
		name = args[0]
		opts = renderer.Options{
			Encoding: c.encoding,
			EscapeKeys: escape.KeySets{
				HTML:     c.escapeHTML,
				HTMLAttr: c.escapeAttr,
				CSS:      c.escapeCSS,
				JS:       c.escapeJS,
			},
		}
	)

	if c.out == "" {
		return r.RenderToScreen(name, data, &opts)
	}

	var buf bytes.Buffer
	if err := r.Render(ctx, &buf, name, data, &opts); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.out), perm); err != nil {
		return fmt.Errorf("error creating parent directory for output file: %w", err)
	}
	if err := atomic.WriteFile(c.out, &buf); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}

	log.Info().Str("name", name).Str("path", c.out).
		Msg("rendered template")

	return nil
}

// data loads the json data file, then applies --set values over it.
func (c *Cmd) data() (renderer.Data, error) {
	data := renderer.Data{}

	if c.dataFile != "" {
		b, err := os.ReadFile(c.dataFile)
		if err != nil {
			return nil, fmt.Errorf("error reading data file: %w", err)
		}
		if err := json.Unmarshal(b, &data); err != nil {
			return nil, fmt.Errorf("error parsing data file %q: %w", c.dataFile, err)
		}
	}

	for _, kv := range c.set {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set value %q: expected key=value", kv)
		}
		data[k] = v
	}

	return data, nil
}
