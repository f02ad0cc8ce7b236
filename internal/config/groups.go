package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/konstruktoid/ansible-lastpass-inventory/internal/model"
	"gopkg.in/yaml.v3"
)

// LoadGroups reads and decodes the group configuration at path.
//
//	servers:
//	  web1: "1001"
//	  db1:            # looked up as "db1"
//	database:
//	  db-primary: "7815456364361241116"
func LoadGroups(path string) (model.GroupConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Path: path, Err: errors.New("can't be found")}
		}
		return nil, &ConfigError{Path: path, Err: err}
	}

	groups, err := ParseGroups(data)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return groups, nil
}

// ParseGroups decodes a group configuration document. The YAML is walked at
// node level so that group and host order survive and identifiers keep
// their literal text.
func ParseGroups(data []byte) (model.GroupConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// empty file
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return model.GroupConfig{}, nil
	}

	root := deref(doc.Content[0])
	if isNull(root) {
		return model.GroupConfig{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of groups", root.Line)
	}

	groups := make(model.GroupConfig, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], deref(root.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: group name must be a scalar", key.Line)
		}

		hosts, err := parseHosts(key.Value, value)
		if err != nil {
			return nil, err
		}
		groups = append(groups, model.Group{Name: key.Value, Hosts: hosts})
	}

	return groups, nil
}

func parseHosts(group string, node *yaml.Node) ([]model.HostEntry, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: group %q must map host aliases to identifiers", node.Line, group)
	}

	seen := make(map[string]bool, len(node.Content)/2)
	hosts := make([]model.HostEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], deref(node.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, fmt.Errorf("line %d: group %q: host alias must be a non-empty scalar", key.Line, group)
		}
		if seen[key.Value] {
			return nil, fmt.Errorf("line %d: group %q: duplicate host %q", key.Line, group, key.Value)
		}
		seen[key.Value] = true

		entry := model.HostEntry{Alias: key.Value}
		switch {
		case isNull(value):
		case value.Kind == yaml.ScalarNode:
			entry.Identifier = value.Value
		default:
			return nil, fmt.Errorf("line %d: group %q: identifier for %q must be a scalar", value.Line, group, key.Value)
		}
		hosts = append(hosts, entry)
	}

	return hosts, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
