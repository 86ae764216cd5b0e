package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// CurrentFormat is the task file format this build writes. Files declaring
// any v1 format are accepted.
const CurrentFormat = "v1.0.0"

// fileDoc is the on-disk shape of a task file.
type fileDoc struct {
	Format   string           `yaml:"format" json:"format"`
	ID       string           `yaml:"id" json:"id"`
	Name     string           `yaml:"name" json:"name"`
	Problems []map[string]any `yaml:"problems" json:"problems"`
}

// LoadFile reads a YAML or JSON task file and loads its problems through reg.
func LoadFile(path string, reg *Registry) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return Parse(data, filepath.Ext(path), reg)
}

// Parse decodes task file content. ext selects the decoder: ".json" for
// JSON, anything else for YAML.
func Parse(data []byte, ext string, reg *Registry) (*Task, error) {
	var doc fileDoc
	var err error
	if strings.EqualFold(ext, ".json") {
		err = decodeJSON(data, &doc)
	} else {
		err = decodeYAML(data, &doc)
	}
	if err != nil {
		return nil, err
	}
	return build(doc, reg)
}

func decodeJSON(data []byte, doc *fileDoc) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse json: multiple documents are not supported")
		}
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}

func decodeYAML(data []byte, doc *fileDoc) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func build(doc fileDoc, reg *Registry) (*Task, error) {
	format, err := checkFormat(doc.Format)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.ID) == "" {
		return nil, fmt.Errorf("task id is required")
	}
	if len(doc.Problems) == 0 {
		return nil, fmt.Errorf("task %s: at least one problem is required", doc.ID)
	}

	t := &Task{
		ID:      doc.ID,
		Name:    doc.Name,
		Format:  format,
		Content: make(map[string]map[string]any, len(doc.Problems)),
	}
	for i, entry := range doc.Problems {
		raw := stringKeys(entry).(map[string]any)
		id, _ := raw["id"].(string)
		typ, _ := raw["type"].(string)
		if id == "" {
			return nil, fmt.Errorf("task %s: problem %d has no id", doc.ID, i+1)
		}
		if typ == "" {
			return nil, fmt.Errorf("task %s: problem %s has no type", doc.ID, id)
		}
		if _, dup := t.Content[id]; dup {
			return nil, fmt.Errorf("task %s: duplicate problem id %q", doc.ID, id)
		}
		delete(raw, "id")
		delete(raw, "type")

		p, err := reg.Load(id, typ, raw)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", doc.ID, err)
		}
		t.Problems = append(t.Problems, p)
		t.Content[id] = raw
	}
	return t, nil
}

// checkFormat accepts an empty format (meaning the current one) or any
// semantic version with major version v1.
func checkFormat(f string) (string, error) {
	if f == "" {
		return CurrentFormat, nil
	}
	v := f
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("task format %q is not a semantic version", f)
	}
	if semver.Major(v) != semver.Major(CurrentFormat) {
		return "", fmt.Errorf("task format %s is not supported (want %s.x)", f, semver.Major(CurrentFormat))
	}
	return semver.Canonical(v), nil
}

// stringKeys converts the map[any]any values yaml produces for mappings with
// non-string keys (e.g. numeric question keys) into map[string]any.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = stringKeys(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = stringKeys(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = stringKeys(e)
		}
		return out
	default:
		return v
	}
}
