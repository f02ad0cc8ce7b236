package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/konstruktoid/ansible-lastpass-inventory/internal/config"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/lastpass"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVault struct {
	checkErr error
	records  map[string]model.SecretRecord
	calls    []string
}

func (f *fakeVault) Check(context.Context) error {
	return f.checkErr
}

func (f *fakeVault) Resolve(_ context.Context, identifier string) (model.SecretRecord, error) {
	f.calls = append(f.calls, identifier)
	r, ok := f.records[identifier]
	if !ok {
		return model.SecretRecord{}, &lastpass.LookupError{Identifier: identifier, Err: lastpass.ErrNoRecords}
	}
	return r, nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestWriteInventory(t *testing.T) {
	path := writeConfig(t, "servers:\n  web1: \"1001\"\n  db1:\n")
	v := &fakeVault{records: map[string]model.SecretRecord{
		"1001": {Username: "admin", Password: "secret", URL: "https://10.0.0.5/login"},
		"db1":  {},
	}}

	var stdout, stderr bytes.Buffer
	err := writeInventory(context.Background(), inventoryRequest{ConfigPath: path}, v, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t,
		`{"_meta":{"hostvars":{"db1":{},"web1":{"ansible_become_password":"secret","ansible_host":"10.0.0.5","ansible_password":"secret","ansible_user":"admin"}}},"lastpass_hosts":["web1","db1"]}`+"\n",
		stdout.String())
	assert.Empty(t, stderr.String())
	assert.Equal(t, []string{"1001", "db1"}, v.calls)
}

func TestWriteInventoryPretty(t *testing.T) {
	path := writeConfig(t, "servers:\n  db1:\n")
	v := &fakeVault{records: map[string]model.SecretRecord{"db1": {}}}

	var stdout, stderr bytes.Buffer
	err := writeInventory(context.Background(), inventoryRequest{ConfigPath: path, Pretty: true}, v, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, `{
  "_meta": {
    "hostvars": {
      "db1": {}
    }
  },
  "lastpass_hosts": [
    "db1"
  ]
}
`, stdout.String())
}

func TestWriteInventoryHost(t *testing.T) {
	path := writeConfig(t, "servers:\n  web1: \"1001\"\n  db1:\n")
	v := &fakeVault{records: map[string]model.SecretRecord{
		"1001": {Username: "admin"},
	}}

	var stdout, stderr bytes.Buffer
	err := writeInventory(context.Background(), inventoryRequest{ConfigPath: path, Host: "web1"}, v, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, `{"ansible_user":"admin"}`+"\n", stdout.String())
	assert.Equal(t, []string{"1001"}, v.calls)
}

func TestWriteInventoryLookupFailure(t *testing.T) {
	path := writeConfig(t, "servers:\n  web1: \"1001\"\n  web2: \"1002\"\n  web3: \"1003\"\n")
	v := &fakeVault{records: map[string]model.SecretRecord{
		"1001": {Username: "a"},
		"1003": {Username: "c"},
	}}

	var stdout, stderr bytes.Buffer
	err := writeInventory(context.Background(), inventoryRequest{ConfigPath: path}, v, &stdout, &stderr)
	require.Error(t, err)

	var lerr *lastpass.LookupError
	require.True(t, errors.As(err, &lerr))
	assert.Empty(t, stdout.String(), "no partial document on failure")
	assert.Contains(t, stderr.String(), "There was an issue with web2: 1002")
	assert.Contains(t, stderr.String(), "group servers")
	assert.Equal(t, []string{"1001", "1002"}, v.calls)
}

func TestWriteInventoryPreconditionFailure(t *testing.T) {
	v := &fakeVault{checkErr: &lastpass.PreconditionError{Op: "checking lpass session", Err: lastpass.ErrNotLoggedIn}}

	var stdout, stderr bytes.Buffer
	err := writeInventory(context.Background(), inventoryRequest{ConfigPath: "does-not-matter.yml"}, v, &stdout, &stderr)
	require.Error(t, err)

	var perr *lastpass.PreconditionError
	assert.True(t, errors.As(err, &perr))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "lpass is not ready")
	assert.Empty(t, v.calls)
}

func TestWriteInventoryMissingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
	v := &fakeVault{}

	var stdout, stderr bytes.Buffer
	err := writeInventory(context.Background(), inventoryRequest{ConfigPath: path}, v, &stdout, &stderr)
	require.Error(t, err)

	var cerr *config.ConfigError
	assert.True(t, errors.As(err, &cerr))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "can't be found")
	assert.Empty(t, v.calls)
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, "servers:\n  web1: \"1001\"\n  db1:\nempty:\n")

	var out bytes.Buffer
	err := validate(context.Background(), path, &fakeVault{}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "group servers: 2 hosts, 1 looked up by alias")
	assert.Contains(t, out.String(), "group empty: 0 hosts")
	assert.Contains(t, out.String(), "3 checks passed, 0 errors")
}

func TestValidateFailures(t *testing.T) {
	v := &fakeVault{checkErr: lastpass.ErrNotInstalled}

	var out bytes.Buffer
	err := validate(context.Background(), filepath.Join(t.TempDir(), "missing.yml"), v, &out)
	require.Error(t, err)

	assert.Contains(t, out.String(), "lpass doesn't seem to be installed")
	assert.Contains(t, out.String(), "can't be found")
	assert.Contains(t, out.String(), "0 checks passed, 2 errors")
}

func TestDescribeGroup(t *testing.T) {
	assert.Equal(t, "1 host", describeGroup(model.Group{Hosts: []model.HostEntry{{Alias: "a", Identifier: "1"}}}))
	assert.Equal(t, "2 hosts, 2 looked up by alias", describeGroup(model.Group{Hosts: []model.HostEntry{{Alias: "a"}, {Alias: "b"}}}))
}
