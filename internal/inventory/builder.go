// Package inventory turns a group configuration into an Ansible dynamic
// inventory by resolving every host through a lastpass.Resolver.
package inventory

import (
	"context"
	"errors"
	"net/url"

	"github.com/konstruktoid/ansible-lastpass-inventory/internal/lastpass"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/logger"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/model"
)

// Build resolves every host of cfg, one at a time and in configuration
// order. The first failed lookup aborts the build; no partial document is
// returned.
func Build(ctx context.Context, cfg model.GroupConfig, resolver lastpass.Resolver) (model.InventoryDocument, error) {
	resolved := make([]model.ResolvedHost, 0, cfg.Len())

	for _, group := range cfg {
		for _, entry := range group.Hosts {
			host, err := resolveHost(ctx, group.Name, entry, resolver)
			if err != nil {
				return model.InventoryDocument{}, err
			}
			resolved = append(resolved, host)
		}
	}

	logger.Logger.Debug().Int("hosts", len(resolved)).Msg("inventory built")
	return model.NewInventoryDocument(resolved), nil
}

// BuildHost resolves only the entries for alias and returns the variables
// of its last occurrence, which is what Build would put in hostvars.
// An alias that isn't configured yields empty variables.
func BuildHost(ctx context.Context, cfg model.GroupConfig, alias string, resolver lastpass.Resolver) (model.HostVars, error) {
	var (
		group string
		entry model.HostEntry
		found bool
	)
	for _, g := range cfg {
		for _, e := range g.Hosts {
			if e.Alias == alias {
				group, entry, found = g.Name, e, true
			}
		}
	}
	if !found {
		return model.HostVars{}, nil
	}

	host, err := resolveHost(ctx, group, entry, resolver)
	if err != nil {
		return model.HostVars{}, err
	}
	return host.Vars, nil
}

func resolveHost(ctx context.Context, group string, entry model.HostEntry, resolver lastpass.Resolver) (model.ResolvedHost, error) {
	id := entry.LookupID()

	logger.Logger.Debug().
		Str("group", group).
		Str("host", entry.Alias).
		Str("identifier", id).
		Msg("resolving host")

	record, err := resolver.Resolve(ctx, id)
	if err != nil {
		return model.ResolvedHost{}, lookupError(group, entry.Alias, id, err)
	}

	return model.ResolvedHost{
		Group: group,
		Alias: entry.Alias,
		Vars:  HostVarsFor(record),
	}, nil
}

// HostVarsFor maps a secret record onto Ansible connection variables,
// leaving out anything empty. The password doubles as become password.
func HostVarsFor(record model.SecretRecord) model.HostVars {
	vars := model.HostVars{
		AnsibleUser: record.Username,
		AnsibleHost: HostFromURL(record.URL),
	}
	if record.Password != "" {
		vars.AnsiblePassword = record.Password
		vars.AnsibleBecomePassword = record.Password
	}
	return vars
}

// HostFromURL returns the network location of raw, port included, or ""
// when raw is empty or can't be parsed.
func HostFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func lookupError(group, alias, id string, err error) error {
	var lerr *lastpass.LookupError
	if errors.As(err, &lerr) {
		out := *lerr
		out.Group, out.Alias, out.Identifier = group, alias, id
		return &out
	}
	return &lastpass.LookupError{Group: group, Alias: alias, Identifier: id, Err: err}
}
