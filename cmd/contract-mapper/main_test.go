package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-mapper/model"
)

var shopContract = filepath.Join("..", "..", "examples", "shop", "contract.yaml")

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestNormalizeAndExport(t *testing.T) {
	out, _, err := run(t, "normalize", "--quiet", shopContract)
	require.NoError(t, err)

	var m model.EntityModel
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	require.Len(t, m.Tables, 2)
	assert.Equal(t, "orders", m.Tables[0].Name)
	assert.Equal(t, model.DataLevelGold, m.Tables[0].DataLevel)

	modelPath := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(modelPath, []byte(out), 0o600))

	text, _, err := run(t, "export", modelPath)
	require.NoError(t, err)
	assert.Contains(t, text, "schema:")
	assert.Contains(t, text, "name: customers")
	assert.Contains(t, text, "- dataLevel:gold")
}

func TestNormalizeStdin(t *testing.T) {
	var stdout bytes.Buffer

	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(bytes.NewBufferString("schema:\n  - name: a\n"))
	root.SetArgs([]string{"--log-level", "error", "normalize", "-"})

	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), `"name": "a"`)
}

func TestRoundTripCommand(t *testing.T) {
	_, stderr, err := run(t, "roundtrip", shopContract)
	require.NoError(t, err)
	assert.Contains(t, stderr, "round trip stable")
}

func TestInspectCommand(t *testing.T) {
	out, _, err := run(t, "inspect", shopContract)
	require.NoError(t, err)

	assert.Contains(t, out, "contract shop 1.2.0")
	assert.Contains(t, out, "table orders (7 columns, gold)")
	assert.Contains(t, out, "relationship orders.customer_id -> customers.id (one-to-many)")
	assert.Contains(t, out, "dependency order: customers, orders")
	assert.NotContains(t, out, "circular:")

	dump, _, err := run(t, "inspect", "--dump", shopContract)
	require.NoError(t, err)
	assert.Contains(t, dump, "EntityModel")
}

func TestCommandErrors(t *testing.T) {
	_, _, err := run(t, "normalize", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, _, err = run(t, "normalize")
	require.Error(t, err)

	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "inspect", shopContract)
	require.Error(t, err)
}
