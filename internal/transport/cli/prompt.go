package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks question and accepts "y" or "yes". Anything else, including
// an empty line or EOF, declines.
func confirm(w io.Writer, r io.Reader, question string) bool {
	fmt.Fprintf(w, "%s [y/N] ", question)

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		fmt.Fprintln(w)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func deletionQuestion(keyword string, affected int, known bool) string {
	if !known {
		return fmt.Sprintf("Delete keyword %q and its stored items?", keyword)
	}

	return fmt.Sprintf("Delete keyword %q and %d stored items?", keyword, affected)
}
