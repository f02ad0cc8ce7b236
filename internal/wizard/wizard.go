package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Run executes the interactive wizard and returns the user's answers.
func Run(detection DetectionResult) (*WizardAnswers, error) {
	answers := &WizardAnswers{}

	desc := "Hosts are listed one per line as 'alias: identifier'.\n" +
		"Leave the identifier out to look the host up by its alias."
	if detection.LPassPath != "" {
		desc += "\n\nlpass found: " + detection.LPassPath
	} else {
		desc += "\n\nlpass was not found in PATH, install it before running the inventory."
	}

	for {
		group := GroupAnswer{}
		if len(answers.Groups) == 0 {
			group.Name = "lastpass_hosts"
		}
		another := false

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Group name").
					Description(desc).
					Value(&group.Name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("group name is required")
						}
						if answers.hasGroup(s) {
							return fmt.Errorf("group %s already added", s)
						}
						return nil
					}),
				huh.NewText().
					Title("Hosts").
					Placeholder("webserver: test-server-01\ndatabase: 7815456364361241116\ntest-server-02").
					Value(&group.Hosts).
					Validate(func(s string) error {
						_, err := ParseHostLines(s)
						return err
					}),
				huh.NewConfirm().
					Title("Add another group?").
					Value(&another),
			),
		)

		if err := form.Run(); err != nil {
			return nil, err
		}

		answers.Groups = append(answers.Groups, group)
		if !another {
			break
		}
	}

	return answers, nil
}

func (a *WizardAnswers) hasGroup(name string) bool {
	name = strings.TrimSpace(name)
	for _, g := range a.Groups {
		if strings.TrimSpace(g.Name) == name {
			return true
		}
	}
	return false
}
