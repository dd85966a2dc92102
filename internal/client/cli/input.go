package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetOptionalText is GetSimpleText where an empty answer means "skip".
func GetOptionalText(reader *bufio.Reader, prompt string, w io.Writer) (*string, error) {
	s, err := GetSimpleText(reader, prompt+" (Enter to skip)", w)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

// GetOptionalFloat keeps asking until it gets a positive number or an empty
// line. A comma is accepted as the decimal separator.
func GetOptionalFloat(reader *bufio.Reader, prompt string, w io.Writer) (*float64, error) {
	for {
		s, err := GetSimpleText(reader, prompt+" (Enter to skip)", w)
		if err != nil || s == "" {
			return nil, err
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err == nil && v > 0 {
			return &v, nil
		}
		fmt.Fprintln(w, "Please enter a positive number")
	}
}

// ChooseOption lists options with their labels, numbered from 1, and
// returns the chosen one. An empty answer returns nil.
func ChooseOption[T any](reader *bufio.Reader, prompt string, options []T, label func(T) string, w io.Writer) (*T, error) {
	var b strings.Builder
	b.WriteString(prompt + " (Enter to skip)")
	for i, o := range options {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, label(o))
	}

	for {
		s, err := GetSimpleText(reader, b.String(), w)
		if err != nil || s == "" {
			return nil, err
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= 1 && n <= len(options) {
			v := options[n-1]
			return &v, nil
		}
		fmt.Fprintf(w, "Please enter a number from 1 to %d\n", len(options))
	}
}
