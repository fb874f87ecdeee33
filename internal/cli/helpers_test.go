package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tianshu/internal/testutil"
)

// testEnv is an isolated config + database for one test.
type testEnv struct {
	dir    string
	config string
	db     string
	clock  *testutil.FixedClock
}

// newTestEnv writes a UTC config without lunar labels. Today is 2025-12-21.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:    dir,
		config: filepath.Join(dir, "tianshu.yaml"),
		db:     filepath.Join(dir, "tianshu.db"),
		clock:  testutil.NewFixedClockOn(2025, time.December, 21, time.UTC),
	}
	env.writeConfig(t, "lunar: false\nrange_days: 5\n")
	return env
}

func (e *testEnv) writeConfig(t *testing.T, extra string) {
	t.Helper()
	content := fmt.Sprintf("database: %s\ntimezone: UTC\n%s", e.db, extra)
	require.NoError(t, os.WriteFile(e.config, []byte(content), 0644))
}

// run executes the root command with --config set and returns stdout.
func (e *testEnv) run(args ...string) (string, error) {
	opts := &RootOptions{clock: e.clock}
	cmd := newRootCommand(opts)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", e.config}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// decode unmarshals a json CLIResponse whose data has type T.
func decode[T any](t *testing.T, out string) (string, T, *CLIError) {
	t.Helper()
	var resp struct {
		Status string    `json:"status"`
		Data   T         `json:"data"`
		Error  *CLIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp.Status, resp.Data, resp.Error
}
