package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/hsm-textlab/workbench/internal/domain"
)

// terminalDialog показывает сообщения действий в терминале и спрашивает подтверждение через stdin.
type terminalDialog struct {
	out       io.Writer
	in        *bufio.Reader
	assumeYes bool
}

func newTerminalDialog(out io.Writer, in io.Reader, assumeYes bool) *terminalDialog {
	return &terminalDialog{out: out, in: bufio.NewReader(in), assumeYes: assumeYes}
}

func (d *terminalDialog) Alert(message string) {
	fmt.Fprintln(d.out, message)
}

func (d *terminalDialog) Confirm(message string) bool {
	if d.assumeYes {
		return true
	}
	fmt.Fprintf(d.out, "%s [y/N] ", message)
	answer, _ := d.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Prompt читает строку; пустой ввод оставляет значение по умолчанию, конец ввода - отмена.
func (d *terminalDialog) Prompt(message, def string) (string, bool) {
	fmt.Fprintf(d.out, "%s [%s]: ", message, def)
	answer, err := d.in.ReadString('\n')
	if err != nil && answer == "" {
		return "", false
	}
	if answer = strings.TrimRight(answer, "\r\n"); answer == "" {
		return def, true
	}
	return answer, true
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printItems(out io.Writer, items []domain.NamedItem) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\n", item.Name, item.ID)
	}
	return tw.Flush()
}

// parseSets разбирает значения флага --set вида key=value.
func parseSets(sets []string) (url.Values, error) {
	values := url.Values{}
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected key=value", kv)
		}
		values.Set(strings.TrimSpace(key), value)
	}
	return values, nil
}
