package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ConfirmDanger asks a yes/no question on stdin, styled for destructive
// actions.
func ConfirmDanger(prompt string) bool {
	return ConfirmFrom(os.Stdin, os.Stdout, StyleError.Render("⚠ "+prompt))
}

// ConfirmFrom reads one answer line from r. Only "y" and "yes" are a yes.
func ConfirmFrom(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
