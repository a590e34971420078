package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptLine prints a prompt and reads one trimmed line from in.
func promptLine(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question and reports whether the user agreed.
// Anything other than "y" or "yes" declines.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	answer, err := promptLine(in, out, question+" [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
