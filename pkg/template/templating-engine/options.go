package templatingengine

type MissingKeyHandler string

const (
	// MissingKeyHandler_Error will cause an error if the data is missing a key used in the template
	MissingKeyHandler_Error MissingKeyHandler = "error"
	// MissingKeyHandler_ZeroValue will cause values whose keys are missing from the data to be replaced with a zero value.
	MissingKeyHandler_ZeroValue MissingKeyHandler = "zero"
	// MissingKeyHandler_Nothing will cause missing keys to be ignored.
	MissingKeyHandler_Nothing MissingKeyHandler = "nothing"
)

func (mkh MissingKeyHandler) Valid() bool {
	return mkh == MissingKeyHandler_Error || mkh == MissingKeyHandler_ZeroValue || mkh == MissingKeyHandler_Nothing
}

func (mkh MissingKeyHandler) Val() string {
	switch mkh {
	case "":
		fallthrough
	case MissingKeyHandler_Nothing:
		return "default"
	default:
		return string(mkh)
	}
}

// Delims are the action delimiters of a template. The zero value selects
// the engine's own.
type Delims struct {
	Left  string
	Right string
}

func (d Delims) IsZero() bool {
	return d.Left == "" && d.Right == ""
}

func (d Delims) Validate() error {
	if d.IsZero() {
		return nil
	}
	if d.Left == "" || d.Right == "" {
		return ErrDelimsEmpty
	}
	if d.Left == d.Right {
		return ErrDelimsSymmetric
	}
	return nil
}

type Options struct {
	MissingKeyHandler MissingKeyHandler
	Delims            Delims
	FuncMap           map[string]any
}
