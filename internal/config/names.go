package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// NameList is a list of type names that may be written as a single string or
// as an array, in YAML and TOML alike. A single string may hold a
// comma-separated list.
type NameList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *NameList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		*n = splitNames(str)

		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*n = arr

		return nil
	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// UnmarshalTOML implements toml.Unmarshaler.
func (n *NameList) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*n = splitNames(v)
	case []any:
		out := make(NameList, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected string in array, got %T", item)
			}

			out = append(out, s)
		}

		*n = out
	default:
		return fmt.Errorf("expected string or array, got %T", v)
	}

	return nil
}

func splitNames(s string) NameList {
	var out NameList

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
