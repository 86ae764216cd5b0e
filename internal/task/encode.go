package task

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Entry is one problem as it appears in a task file.
type Entry struct {
	ID      string
	Type    string
	Content map[string]any
}

// Encode renders a YAML task file in CurrentFormat. Each problem lists its
// id and type first, then its content keys in sorted order.
func Encode(id, name string, entries []Entry) ([]byte, error) {
	doc := struct {
		Format   string       `yaml:"format"`
		ID       string       `yaml:"id"`
		Name     string       `yaml:"name,omitempty"`
		Problems []*yaml.Node `yaml:"problems"`
	}{Format: CurrentFormat, ID: id, Name: name}

	for _, e := range entries {
		n, err := entryNode(e)
		if err != nil {
			return nil, fmt.Errorf("encode problem %s: %w", e.ID, err)
		}
		doc.Problems = append(doc.Problems, n)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode task: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode task: %w", err)
	}
	return buf.Bytes(), nil
}

func entryNode(e Entry) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value any) error {
		var k, v yaml.Node
		k.SetString(key)
		if err := v.Encode(value); err != nil {
			return err
		}
		n.Content = append(n.Content, &k, &v)
		return nil
	}

	if err := add("id", e.ID); err != nil {
		return nil, err
	}
	if err := add("type", e.Type); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(e.Content))
	for k := range e.Content {
		if k != "id" && k != "type" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := add(k, e.Content[k]); err != nil {
			return nil, err
		}
	}
	return n, nil
}
