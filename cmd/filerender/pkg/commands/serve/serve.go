package serve

import (
	"errors"

	"github.com/spf13/cobra"
)

type Cmd struct {
	cobraCommand *cobra.Command

	paths []string
	addr  string
}

func New() *Cmd {
	return &Cmd{}
}

func (cmd *Cmd) CobraCommand() *cobra.Command {
	if cmd.cobraCommand != nil {
		return cmd.cobraCommand
	}

	cmd.cobraCommand = &cobra.Command{
		Use:   "serve",
		Short: "Preview templates over HTTP",
		Args:  cobra.NoArgs,
	}
	cmd.cobraCommand.RunE = cmd.run

	flags := cmd.cobraCommand.Flags()
	flags.StringArrayVarP(&cmd.paths, "path", "p", nil, "directory to search for templates (repeatable)")
	flags.StringVar(&cmd.addr, "addr", "", "address to listen on (defaults to :$PORT)")

	return cmd.cobraCommand
}

func (cmd *Cmd) validate() error {
	if cmd.cobraCommand == nil {
		return errors.New("cobraCommand is required")
	}
	return nil
}
