package render

import (
	"errors"

	"github.com/spf13/cobra"
)

type Cmd struct {
	cobraCommand *cobra.Command

	paths      []string
	dataFile   string
	set        []string
	encoding   string
	escapeHTML []string
	escapeAttr []string
	escapeCSS  []string
	escapeJS   []string
	out        string
}

func New() *Cmd {
	return &Cmd{}
}

func (cmd *Cmd) CobraCommand() *cobra.Command {
	if cmd.cobraCommand != nil {
		return cmd.cobraCommand
	}

	cmd.cobraCommand = &cobra.Command{
		Use:   "render NAME",
		Short: "Render a template file",
		Long: "Render a template file located through the search paths. " +
			"Search paths given with --path are tried before those in FILERENDER_PATHS.",
		Args: cobra.ExactArgs(1),
	}
	cmd.cobraCommand.RunE = cmd.run

	flags := cmd.cobraCommand.Flags()
	flags.StringArrayVarP(&cmd.paths, "path", "p", nil, "directory to search for templates (repeatable)")
	flags.StringVarP(&cmd.dataFile, "data", "d", "", "path to a json file holding the template data")
	flags.StringArrayVar(&cmd.set, "set", nil, "set a data value as key=value (repeatable)")
	flags.StringVar(&cmd.encoding, "encoding", "", "character encoding used when escaping")
	flags.StringArrayVar(&cmd.escapeHTML, "escape-html", nil, "data key to escape for an HTML body, * for all (repeatable)")
	flags.StringArrayVar(&cmd.escapeAttr, "escape-attr", nil, "data key to escape for an HTML attribute, * for all (repeatable)")
	flags.StringArrayVar(&cmd.escapeCSS, "escape-css", nil, "data key to escape for CSS, * for all (repeatable)")
	flags.StringArrayVar(&cmd.escapeJS, "escape-js", nil, "data key to escape for JavaScript, * for all (repeatable)")
	flags.StringVarP(&cmd.out, "out", "o", "", "write the output to this file instead of stdout")

	return cmd.cobraCommand
}

func (cmd *Cmd) validate() error {
	if cmd.cobraCommand == nil {
		return errors.New("cobraCommand is required")
	}
	return nil
}
