package errhandler

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/model"
)

// HandleError prints err for the terminal user and returns the process exit
// code. A cancelled prompt is not a failure.
func HandleError(err error) int {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, huh.ErrUserAborted) ||
		strings.Contains(err.Error(), "interrupt") {
		pterm.Warning.Println("Operation Cancelled")
		return 0
	}

	var ie *model.IntentError
	if errors.As(err, &ie) {
		pterm.Error.Println(capitalize(err.Error()))
		if ie.Field != "" {
			pterm.Info.Printf("Check the value of %q\n", ie.Field)
		}
		return 1
	}

	if errors.Is(err, model.ErrStorageFailure) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	pterm.Error.Println(capitalize(err.Error()))
	return 1
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
