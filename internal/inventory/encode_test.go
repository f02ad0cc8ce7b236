package inventory

import (
	"bytes"
	"testing"

	"github.com/konstruktoid/ansible-lastpass-inventory/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() model.InventoryDocument {
	return model.NewInventoryDocument([]model.ResolvedHost{
		{Alias: "web1", Vars: model.HostVars{
			AnsibleUser:           "admin",
			AnsiblePassword:       "secret",
			AnsibleBecomePassword: "secret",
			AnsibleHost:           "10.0.0.5",
		}},
		{Alias: "db1"},
	})
}

func TestWriteCompact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleDocument(), false))

	expected := `{"_meta":{"hostvars":{"db1":{},"web1":{"ansible_become_password":"secret","ansible_host":"10.0.0.5","ansible_password":"secret","ansible_user":"admin"}}},"lastpass_hosts":["web1","db1"]}` + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestWritePretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleDocument(), true))

	expected := `{
  "_meta": {
    "hostvars": {
      "db1": {},
      "web1": {
        "ansible_become_password": "secret",
        "ansible_host": "10.0.0.5",
        "ansible_password": "secret",
        "ansible_user": "admin"
      }
    }
  },
  "lastpass_hosts": [
    "web1",
    "db1"
  ]
}
`
	assert.Equal(t, expected, buf.String())
}

func TestWriteHostVars(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, model.HostVars{}, false))
	assert.Equal(t, "{}\n", buf.String())
}

func TestWriteKeepsSpecialCharacters(t *testing.T) {
	doc := model.NewInventoryDocument([]model.ResolvedHost{
		{Alias: "web1", Vars: model.HostVars{AnsiblePassword: "a&b<c>", AnsibleBecomePassword: "a&b<c>"}},
	})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc, false))
	assert.Contains(t, buf.String(), `"ansible_password":"a&b<c>"`)
}
