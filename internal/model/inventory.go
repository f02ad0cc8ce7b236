package model

// HostVars are the variables Ansible receives for one host.
// Empty values are omitted so Ansible falls back to its defaults.
type HostVars struct {
	AnsibleBecomePassword string `json:"ansible_become_password,omitempty"`
	AnsibleHost           string `json:"ansible_host,omitempty"`
	AnsiblePassword       string `json:"ansible_password,omitempty"`
	AnsibleUser           string `json:"ansible_user,omitempty"`
}

// IsEmpty reports whether no variable is set.
func (v HostVars) IsEmpty() bool {
	return v == HostVars{}
}

// InventoryDocument is the JSON document printed for `--list`.
type InventoryDocument struct {
	Meta  Meta     `json:"_meta"`
	Hosts []string `json:"lastpass_hosts"`
}

// Meta carries per-host variables so Ansible skips the `--host` calls.
type Meta struct {
	HostVars map[string]HostVars `json:"hostvars"`
}

// ResolvedHost is one configuration entry after its secret was resolved.
type ResolvedHost struct {
	Group string
	Alias string
	Vars  HostVars
}

// NewInventoryDocument assembles a document from resolved hosts in order.
// Every alias is listed once per occurrence; when an alias occurs more than
// once the variables of the last occurrence win.
func NewInventoryDocument(hosts []ResolvedHost) InventoryDocument {
	doc := InventoryDocument{
		Meta:  Meta{HostVars: make(map[string]HostVars, len(hosts))},
		Hosts: make([]string, 0, len(hosts)),
	}
	for _, h := range hosts {
		doc.Hosts = append(doc.Hosts, h.Alias)
		doc.Meta.HostVars[h.Alias] = h.Vars
	}
	return doc
}
