package cli

import (
	"context"
	"fmt"
	"io"
)

// terminalNavigator turns the shop API client's redirects into messages.
type terminalNavigator struct {
	out io.Writer
}

func (n terminalNavigator) ToLogin(_ context.Context, returnPath string) {
	fmt.Fprintln(n.out, "session expired; run `shopadmin login`")
	if returnPath != "" {
		fmt.Fprintf(n.out, "after logging in, rerun: %s\n", returnPath)
	}
}

func (n terminalNavigator) ToForbidden(context.Context) {
	fmt.Fprintln(n.out, "access forbidden")
}
