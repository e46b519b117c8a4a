package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Paths use dots for mapping keys and [n] for list items, for example:
//
//	aspect_ratio
//	outer_margins.bottom
//	border_widths
//	programs.terminal
//	bindings[3].key
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	if isBuiltinPath(path) {
		return value, Source{Kind: SourceBuiltin, Name: "builtin"}, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func isBuiltinPath(path string) bool {
	for _, prefix := range []string{"bindings", "buttons", "programs"} {
		if path == prefix || strings.HasPrefix(path, prefix+".") || strings.HasPrefix(path, prefix+"[") {
			return true
		}
	}
	return false
}

func lookupValue(cfg *Config, path string) (any, error) {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	node := &doc
	for _, part := range splitPath(path) {
		next, err := descend(node, part)
		if err != nil {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		node = next
	}
	var out any
	if err := node.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// splitPath turns "bindings[3].key" into ["bindings", "[3]", "key"].
func splitPath(path string) []string {
	var parts []string
	for _, seg := range strings.Split(path, ".") {
		for {
			i := strings.IndexByte(seg, '[')
			if i < 0 {
				break
			}
			if i > 0 {
				parts = append(parts, seg[:i])
			}
			j := strings.IndexByte(seg, ']')
			if j < i {
				break
			}
			parts = append(parts, seg[i:j+1])
			seg = seg[j+1:]
		}
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return parts
}

func descend(node *yaml.Node, part string) (*yaml.Node, error) {
	if strings.HasPrefix(part, "[") {
		if node.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("not a list")
		}
		idx, err := strconv.Atoi(strings.Trim(part, "[]"))
		if err != nil || idx < 0 || idx >= len(node.Content) {
			return nil, fmt.Errorf("index %s out of range", part)
		}
		return node.Content[idx], nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("not a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == part {
			return node.Content[i+1], nil
		}
	}
	return nil, fmt.Errorf("no key %q", part)
}
