package wizard

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/konstruktoid/ansible-lastpass-inventory/internal/model"
	"gopkg.in/yaml.v3"
)

// WizardAnswers holds all user responses from the wizard.
type WizardAnswers struct {
	Groups []GroupAnswer
}

// GroupAnswer is one group as typed into the wizard. Hosts holds one host
// per line, either "alias" or "alias: identifier".
type GroupAnswer struct {
	Name  string
	Hosts string
}

const configHeader = `# ansible-lastpass-inventory configuration
#
# group:
#   host-alias: lastpass-identifier   # name, folder/name or numeric id
#   other-alias:                      # looked up as "other-alias"
---
`

// ParseHostLines turns the wizard's host text into entries. Blank lines and
// lines starting with # are skipped.
func ParseHostLines(text string) ([]model.HostEntry, error) {
	var hosts []model.HostEntry
	seen := make(map[string]bool)

	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		alias, id, _ := strings.Cut(line, ":")
		alias = strings.TrimSpace(alias)
		id = strings.TrimSpace(id)
		if alias == "" {
			return nil, fmt.Errorf("line %d: missing host alias", n+1)
		}
		if seen[alias] {
			return nil, fmt.Errorf("line %d: duplicate host %q", n+1, alias)
		}
		seen[alias] = true

		hosts = append(hosts, model.HostEntry{Alias: alias, Identifier: id})
	}

	return hosts, nil
}

// GenerateConfig renders the YAML group configuration from wizard answers.
func GenerateConfig(answers WizardAnswers) (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, g := range answers.Groups {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			return "", fmt.Errorf("group name must not be empty")
		}

		hosts, err := ParseHostLines(g.Hosts)
		if err != nil {
			return "", fmt.Errorf("group %s: %w", name, err)
		}

		group := &yaml.Node{Kind: yaml.MappingNode}
		for _, h := range hosts {
			value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
			if h.Identifier != "" {
				value = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: h.Identifier}
			}
			group.Content = append(group.Content, stringNode(h.Alias), value)
		}
		root.Content = append(root.Content, stringNode(name), group)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	return buf.String(), nil
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
