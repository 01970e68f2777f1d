package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/teranos/sysfacts/config"
	"github.com/teranos/sysfacts/facts"
)

// RenderFacts writes records in format. Structured formats nest dotted
// names. For text, a lone query prints the bare value the way shell
// scripts expect.
func RenderFacts(w io.Writer, records []facts.ResolvedFact, format string, bare bool) error {
	switch format {
	case config.FormatText, "":
		if bare && len(records) == 1 {
			_, err := fmt.Fprintln(w, textValue(records[0].Value))
			return err
		}
		for _, f := range records {
			name := pterm.LightCyan(f.Name)
			if f.Kind == facts.KindLegacy {
				name = pterm.Gray(f.Name)
			}
			if _, err := fmt.Fprintf(w, "%s => %s\n", name, textValue(f.Value)); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderStructured(w, facts.Tree(records), format)
	}
}

// renderStructured marshals v (a tree of maps) in a structured format
func renderStructured(w io.Writer, v map[string]any, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case config.FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case config.FormatYAML:
		data, err = yaml.Marshal(v)
	case config.FormatTOML:
		// TOML has no null
		data, err = toml.Marshal(withoutNil(v))
	default:
		return fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(config.Formats, ", "))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal facts to %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

// textValue renders one value for text output. Absent values print empty.
func textValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return "[" + strings.Join(quoteAll(val), ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s => %s", k, textValue(val[k])))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(val)
	}
}

func quoteAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}

// withoutNil drops nil leaves and the branches they leave empty
func withoutNil(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case nil:
			continue
		case map[string]any:
			if child := withoutNil(val); len(child) > 0 {
				out[k] = child
			}
		default:
			out[k] = val
		}
	}
	return out
}
