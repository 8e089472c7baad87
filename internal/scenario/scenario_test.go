package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes a scenario YAML file into dir and returns its path.
func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "ticker.yaml", `
name: xbt-usd-ticker
description: "The XBT/USD ticker carries a full set of market fields."
request:
  method: GET
  path: /0/public/Ticker
  params:
    pair: xbtusd
expect:
  status: 200
  shape: ticker
`)

	sc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "xbt-usd-ticker", sc.Name)
	assert.Equal(t, "GET", sc.Request.Method)
	assert.Equal(t, "/0/public/Ticker", sc.Request.Path)
	assert.Equal(t, "xbtusd", sc.Pair())
	assert.False(t, sc.Request.Auth)
	assert.Equal(t, 200, sc.Expect.Status)
	assert.Equal(t, "ticker", sc.Expect.Shape)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "time.yaml", `
name: server-time
description: "The exchange reports its current time."
request:
  path: /0/public/Time
expect:
  shape: time
`)

	sc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "GET", sc.Request.Method)
	assert.Equal(t, 200, sc.Expect.Status)
}

func TestLoad_AuthenticatedScenario(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "orders.yaml", `
name: open-orders
description: "The authenticated account lists its open orders."
request:
  method: POST
  path: /0/private/OpenOrders
  auth: true
expect:
  shape: orders
`)

	sc, err := Load(path)
	require.NoError(t, err)

	assert.True(t, sc.Request.Auth)
	assert.Equal(t, "POST", sc.Request.Method)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "bad.yaml", "name: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	// "expects" is a typo for "expect"; strict decoding must catch it.
	path := writeScenario(t, t.TempDir(), "typo.yaml", `
name: server-time
description: "Typo'd scenario"
request:
  path: /0/public/Time
expects:
  shape: time
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: "No name"
request:
  path: /0/public/Time
expect:
  shape: time
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: no-description
request:
  path: /0/public/Time
expect:
  shape: time
`,
			wantErr: "description is required",
		},
		{
			name: "bad method",
			content: `
name: bad-method
description: "DELETE is not supported"
request:
  method: DELETE
  path: /0/public/Time
expect:
  shape: time
`,
			wantErr: "request.method must be GET or POST",
		},
		{
			name: "missing path",
			content: `
name: no-path
description: "No path"
request: {}
expect:
  shape: time
`,
			wantErr: "request.path is required",
		},
		{
			name: "relative path",
			content: `
name: relative-path
description: "Path without leading slash"
request:
  path: 0/public/Time
expect:
  shape: time
`,
			wantErr: "request.path must start with /",
		},
		{
			name: "missing shape",
			content: `
name: no-shape
description: "No shape tag"
request:
  path: /0/public/Time
expect:
  status: 200
`,
			wantErr: "expect.shape is required",
		},
		{
			name: "unknown shape",
			content: `
name: bad-shape
description: "Shape outside the closed set"
request:
  path: /0/public/Time
expect:
  shape: balance
`,
			wantErr: "not a known shape",
		},
		{
			name: "invalid status",
			content: `
name: bad-status
description: "Status outside HTTP range"
request:
  path: /0/public/Time
expect:
  status: 9999
  shape: time
`,
			wantErr: "not a valid HTTP status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "sc.yaml", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDiscover_FindsYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.yaml", "x")
	writeScenario(t, dir, "b.yml", "x")
	writeScenario(t, dir, "notes.txt", "x")

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeScenario(t, sub, "c.yaml", "x")

	files, err := Discover(dir, "")
	require.NoError(t, err)
	require.Len(t, files, 3)
}

func TestDiscover_Filter(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "public_time.yaml", "x")
	writeScenario(t, dir, "public_ticker.yaml", "x")
	writeScenario(t, dir, "private_open_orders.yaml", "x")

	files, err := Discover(dir, "public_*")
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.Contains(t, filepath.Base(f), "public_")
	}
}

func TestDiscover_InvalidFilter(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.yaml", "x")

	_, err := Discover(dir, "[unclosed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

func TestLoadDir_CollectsFailures(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "good.yaml", `
name: server-time
description: "The exchange reports its current time."
request:
  path: /0/public/Time
expect:
  shape: time
`)
	broken := writeScenario(t, dir, "broken.yaml", "name: [unclosed")

	scenarios, failures, err := LoadDir(dir, "")
	require.NoError(t, err)

	require.Len(t, scenarios, 1)
	assert.Equal(t, "server-time", scenarios[0].Name)

	require.Len(t, failures, 1)
	assert.Error(t, failures[broken])
}
