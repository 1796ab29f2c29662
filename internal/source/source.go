// Package source loads the items shown by the widget from static data, a
// generator, or a file on disk, and watches files for changes.
package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/multiselect/internal/item"
	"gopkg.in/yaml.v3"
)

// Source produces the item set.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]item.Item, error)
}

// Static serves a fixed item slice.
type Static struct {
	Label string
	Items []item.Item
}

func (s Static) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

func (s Static) Load(context.Context) ([]item.Item, error) {
	return item.Clone(s.Items), nil
}

// Generated serves Count items labelled "Item N".
type Generated struct {
	Count int
}

func (g Generated) Name() string {
	return fmt.Sprintf("generated:%d", g.Count)
}

func (g Generated) Load(context.Context) ([]item.Item, error) {
	if g.Count < 0 {
		return nil, fmt.Errorf("generated source: negative count %d", g.Count)
	}
	return item.Generate(g.Count), nil
}

// File reads items from Path. YAML and JSON files hold either a list of items
// or a document with an "items" key; any other extension is read as plain
// text with one item per line, optionally "id<TAB>label".
type File struct {
	Path string
}

func (f File) Name() string {
	return f.Path
}

func (f File) Load(ctx context.Context) ([]item.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var items []item.Item
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml", ".json":
		items, err = decodeStructured(data)
	default:
		items, err = decodeLines(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return items, nil
}

type document struct {
	Items []item.Item `yaml:"items"`
}

// decodeStructured accepts YAML and, since JSON is a YAML subset, JSON.
func decodeStructured(data []byte) ([]item.Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	var raw []item.Item
	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		if err := node.Content[0].Decode(&raw); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var doc document
		if err := node.Content[0].Decode(&doc); err != nil {
			return nil, err
		}
		raw = doc.Items
	default:
		return nil, errors.New("expected a list of items or an items key")
	}
	return normalize(raw)
}

func decodeLines(data []byte) ([]item.Item, error) {
	var items []item.Item
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		id, label, found := strings.Cut(line, "\t")
		if !found {
			label = strings.TrimSpace(line)
			id = label
		}
		items = append(items, item.Item{ID: strings.TrimSpace(id), Label: strings.TrimSpace(label)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return normalize(items)
}

// normalize fills a missing ID from the label and a missing label from the ID.
func normalize(items []item.Item) ([]item.Item, error) {
	out := items[:0]
	for i, it := range items {
		switch {
		case it.ID == "" && it.Label == "":
			return nil, fmt.Errorf("item %d: id and label are both empty", i)
		case it.ID == "":
			it.ID = it.Label
		case it.Label == "":
			it.Label = it.ID
		}
		out = append(out, it)
	}
	return out, nil
}
