package root

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/raphaelreyna/filerender/cmd/filerender/pkg/commands/render"
	"github.com/raphaelreyna/filerender/cmd/filerender/pkg/commands/serve"
	"github.com/raphaelreyna/filerender/pkg/log"
)

type rootCommand struct {
	cobra.Command
	verbose bool
}

func ExecuteContext(ctx context.Context) error {
	return New().ExecuteContext(ctx)
}

func New() *cobra.Command {
	var (
		root rootCommand
		cmd  = &root.Command
	)

	root.Use = "filerender"
	root.Short = "Render template files found through a list of search paths"
	root.SilenceUsage = true
	root.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "log debug output")
	root.PersistentPreRun = root.setLogLevel
	root.setSubCommands()

	return cmd
}

func (root *rootCommand) setLogLevel(cmd *cobra.Command, args []string) {
	var (
		level  = slog.LevelInfo
		zlevel = zerolog.InfoLevel
	)
	if root.verbose {
		level = slog.LevelDebug
		zlevel = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(zlevel)
	log.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func (root *rootCommand) setSubCommands() {
	for _, cmd := range subCommands() {
		root.AddCommand(cmd)
	}
}

func subCommands() []*cobra.Command {
	return []*cobra.Command{
		render.New().CobraCommand(),
		serve.New().CobraCommand(),
	}
}
