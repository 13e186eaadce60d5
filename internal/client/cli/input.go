package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/myhealth/internal/client/forms"
)

// clearMarker typed at a text prompt empties the field.
const clearMarker = "-"

// readLine reads one line and trims surrounding whitespace. If EOF occurs
// after some input was read, the partial line is returned.
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

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
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

// Confirm asks a yes/no question. An empty answer selects def.
func Confirm(reader *bufio.Reader, question string, def bool, w io.Writer) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	if _, err := fmt.Fprintf(w, "%s %s ", question, hint); err != nil {
		return false, err
	}
	answer, err := readLine(reader)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptControl asks for a new value of c. Pressing Enter keeps the current
// value; typing "-" clears a text field. Numeric input is re-asked until it
// parses and respects the control's minimum.
func PromptControl(reader *bufio.Reader, c forms.Control, w io.Writer) (string, error) {
	if c.Type == forms.ControlTextarea {
		return promptTextarea(reader, c, w)
	}

	for {
		if _, err := fmt.Fprintf(w, "%s [%s]: ", c.Label, c.Value); err != nil {
			return "", err
		}
		raw, err := readLine(reader)
		if err != nil {
			return "", err
		}

		switch {
		case raw == "":
			return c.Value, nil
		case c.Type == forms.ControlText && raw == clearMarker:
			return "", nil
		case c.Type == forms.ControlNumber:
			if _, err := forms.ParseNumber(raw, c.Min); err != nil {
				fmt.Fprintf(w, "  %v, try again\n", err)
				continue
			}
			return raw, nil
		default:
			return raw, nil
		}
	}
}

// promptTextarea reads lines until an empty one. An empty first line keeps
// the current value; a lone "-" clears it.
func promptTextarea(reader *bufio.Reader, c forms.Control, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s [%s]\n(press Enter on an empty line to finish)\n", c.Label, c.Value); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			lines = append(lines, line)
		}
		if line == "" || err != nil {
			break
		}
	}

	switch {
	case len(lines) == 0:
		return c.Value, nil
	case len(lines) == 1 && lines[0] == clearMarker:
		return "", nil
	default:
		return strings.TrimSpace(strings.Join(lines, "\n")), nil
	}
}

// PromptForm asks for every control in turn and collects the answers.
func PromptForm(reader *bufio.Reader, controls []forms.Control, w io.Writer) (forms.Values, error) {
	values := make(forms.Values, len(controls))
	for _, c := range controls {
		if c.Error != "" {
			fmt.Fprintf(w, "  %s: %s\n", c.Label, c.Error)
		}
		v, err := PromptControl(reader, c, w)
		if err != nil {
			return nil, err
		}
		values[c.Name] = v
	}
	return values, nil
}
