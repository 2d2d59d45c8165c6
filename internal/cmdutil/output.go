package cmdutil

import (
	"errors"
	"fmt"
	"io"

	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/loader"
	"github.com/tctrl/cli/internal/output"
	"github.com/tctrl/cli/internal/schema"
	"github.com/tctrl/cli/internal/validate"
)

// PrintValidationError prints a validation failure in a user-friendly format:
// a summary line followed by one line per issue. Other errors fall back to
// the standard key-value log format.
func PrintValidationError(msg string, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		output.Error(fmt.Sprintf("%s: %s has %d issue(s)", msg, verr.Location, len(verr.Issues)))
		for _, issue := range verr.Issues {
			output.Error("  "+issue.Path, "reason", issue.Message)
		}
		return
	}

	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(msg)
		output.Error(detail.Error())
		return
	}

	output.Error(msg, "error", err)
}

// PrintDuplicateKeys reports sibling key collisions found by CheckUnique.
func PrintDuplicateKeys(location string, errs []error) {
	output.Error(fmt.Sprintf("%s: %d duplicate key(s)", location, len(errs)))
	for _, err := range errs {
		output.Error("  " + err.Error())
	}
}

// LoadSchema reads and builds the app schema at path ("-" for stdin).
// Construction failures are printed and returned as already-reported exit
// errors.
func LoadSchema(path string, stdin io.Reader) (*schema.AppSchema, error) {
	app, err := loader.Load(path, stdin)
	if err != nil {
		PrintValidationError("could not load schema", err)
		return nil, &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}
	return app, nil
}
