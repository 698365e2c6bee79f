package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/selleradmin/internal/common"
)

func (a *App) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

// report prints a failed command as "error: KIND: message".
func (a *App) report(err error) {
	if err == nil {
		return
	}
	var argErr usageError
	if errors.As(err, &argErr) {
		fmt.Fprintln(a.out, "usage:", argErr.usage)
		return
	}
	fmt.Fprintf(a.out, "error: %s: %v\n", common.KindOf(err), err)
}

type usageError struct {
	usage string
}

func (e usageError) Error() string { return "usage: " + e.usage }
