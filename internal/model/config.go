package model

// GroupConfig is the decoded lastpass_inventory.yml, in file order.
type GroupConfig []Group

// Group is a named set of hosts.
type Group struct {
	Name  string
	Hosts []HostEntry
}

// HostEntry maps an inventory alias to a LastPass identifier.
// Identifier may be empty, in which case the alias is looked up.
type HostEntry struct {
	Alias      string
	Identifier string
}

// LookupID returns the identifier passed to the vault for this entry.
func (h HostEntry) LookupID() string {
	if h.Identifier == "" {
		return h.Alias
	}
	return h.Identifier
}

// Len returns the number of (group, alias) pairs across all groups.
func (c GroupConfig) Len() int {
	n := 0
	for _, g := range c {
		n += len(g.Hosts)
	}
	return n
}
