package tui

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/floatpane/internal/config"
)

// placementChanges lists "key: old -> new" for every placement setting that
// differs between the two configs.
func placementChanges(original, current config.Placement) []string {
	before := placementFields(original)
	after := placementFields(current)

	var changes []string
	for _, f := range after {
		old := lookup(before, f.key)
		if old != f.value {
			changes = append(changes, fmt.Sprintf("%s: %s -> %s", f.key, old, f.value))
		}
	}
	return changes
}

type field struct {
	key   string
	value string
}

// placementFields flattens the placement section in YAML key order.
func placementFields(p config.Placement) []field {
	var node yaml.Node
	if err := node.Encode(p); err != nil || node.Kind != yaml.MappingNode {
		return nil
	}
	fields := make([]field, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		fields = append(fields, field{key: node.Content[i].Value, value: node.Content[i+1].Value})
	}
	return fields
}

func lookup(fields []field, key string) string {
	for _, f := range fields {
		if f.key == key {
			return f.value
		}
	}
	return ""
}

func (m *model) save() {
	changes := placementChanges(m.original.Placement, m.cfg.Placement)
	if len(changes) == 0 {
		m.setStatus("no changes to save", false)
		return
	}
	if err := config.Save(m.path, m.cfg); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.original = *m.cfg
	m.setStatus(fmt.Sprintf("saved to %s: %s", m.path, strings.Join(changes, ", ")), false)
}
