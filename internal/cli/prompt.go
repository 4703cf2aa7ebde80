package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y"/"yes")
	Accepted bool
	// Cancelled is true if reading input failed (e.g. Ctrl+C mid-read)
	Cancelled bool
}

// Confirm writes a [y/N] prompt and reads one line of input. Empty
// input and anything but y/yes decline; non-interactive environments
// decline immediately without prompting, so scripts must pass --force.
func Confirm(writer io.Writer, reader io.Reader, message string) PromptResult {
	return confirm(writer, reader, message, isTerminal(os.Stdin))
}

func confirm(writer io.Writer, reader io.Reader, message string, interactive bool) PromptResult {
	if !interactive {
		return PromptResult{Accepted: false}
	}

	fmt.Fprintf(writer, "%s [y/N] ", message)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error - user pressed Ctrl+D, treat as decline
		return PromptResult{Accepted: false}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{Accepted: false}
	}
}
