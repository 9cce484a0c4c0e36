// Command djsim demonstrates the Deutsch-Jozsa algorithm: it decides whether
// a hidden boolean function is constant or balanced with a single oracle
// query, simulated on an exact statevector engine.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agbru/djsim/internal/app"
	apperrors "github.com/agbru/djsim/internal/errors"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run contains the actual program logic, separated from main for testability.
func run(args []string, out, errOut *os.File) int {
	// Handle --version before config parsing so it works in any position
	if app.HasVersionFlag(args[1:]) {
		app.PrintVersion(out)
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, errOut)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	return application.Run(context.Background(), out)
}
