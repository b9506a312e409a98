package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/raphaelreyna/filerender/cmd/filerender/pkg/config"
	"github.com/raphaelreyna/filerender/internal/server"
	"github.com/raphaelreyna/filerender/pkg/renderer"
)

const shutdownTimeout = 5 * time.Second

func (c *Cmd) run(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	err = c.validate()
	if err != nil {
		return fmt.Errorf("error validating serve command: %w", err)
	}

	conf, err := config.DefaultedConfig()
	if err != nil {
		return fmt.Errorf("error reading config from environment: %w", err)
	}

	paths := conf.PathsAfter(c.paths)
	if len(paths) == 0 {
		return errors.New("at least one search path is required")
	}

	r, err := renderer.New(&renderer.Config{
		SearchPaths:    paths,
		EscapeEncoding: conf.Encoding,
		GuardSize:      conf.GuardSize,
	})
	if err != nil {
		return fmt.Errorf("error creating renderer: %w", err)
	}

	s, err := server.NewServer(&server.Config{
		Renderer:  r,
		AccessLog: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	addr := c.addr
	if addr == "" {
		addr = ":" + conf.Port
	}

	srv := http.Server{Addr: addr, Handler: s}
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()

	log.Info().
		Str("addr", addr).Strs("paths", paths).
		Msg("listening for HTTP traffic")

	select {
	case err = <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	return nil
}
