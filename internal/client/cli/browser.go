package cli

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// browserNavigator prints the authorization URL and tries to open it.
type browserNavigator struct {
	w    io.Writer
	open func(url string) error
}

func (n *browserNavigator) Navigate(_ context.Context, url string) error {
	fmt.Fprintf(n.w, "Open this URL to log in:\n%s\n", url)
	if n.open == nil {
		return nil
	}
	if err := n.open(url); err != nil {
		fmt.Fprintln(n.w, "Could not open a browser, copy the URL above.")
	}
	return nil
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
