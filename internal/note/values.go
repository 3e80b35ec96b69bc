package note

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TagList decodes either a scalar ("a, b" or "[a, b]") or a YAML sequence
// into a list of tag names. Obsidian notes use both forms interchangeably.
type TagList []string

func (t *TagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		var out TagList
		for _, item := range items {
			if clean := StripQuotes(item); clean != "" {
				out = append(out, clean)
			}
		}
		*t = out
		return nil
	case yaml.ScalarNode:
		*t = SplitList(value.Value)
		return nil
	case 0:
		*t = nil
		return nil
	}
	return fmt.Errorf("tags: unsupported YAML node kind %d", value.Kind)
}

// SplitList parses a bracketed or bare comma-separated scalar into items,
// trimming whitespace and a single layer of quotes.
func SplitList(value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	var out []string
	for _, item := range strings.Split(trimmed, ",") {
		if clean := StripQuotes(item); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

// Boolish accepts real YAML booleans plus the loose scalar forms
// (yes/1/"true"); anything unrecognized decodes to false instead of
// failing the whole front-matter block.
type Boolish bool

func (b *Boolish) UnmarshalYAML(value *yaml.Node) error {
	var native bool
	if err := value.Decode(&native); err == nil {
		*b = Boolish(native)
		return nil
	}
	*b = Boolish(ParseBool(value.Value))
	return nil
}
