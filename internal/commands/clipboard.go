package commands

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// copyToClipboard copies the given text to the system clipboard
func copyToClipboard(text string) error {
	cmd, err := clipboardCommand(runtime.GOOS)
	if err != nil {
		return err
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func clipboardCommand(goos string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("pbcopy"), nil
	case "linux":
		return exec.Command("xclip", "-selection", "clipboard"), nil
	case "windows":
		return exec.Command("clip"), nil
	default:
		return nil, fmt.Errorf("unsupported platform for clipboard operations: %s", goos)
	}
}
