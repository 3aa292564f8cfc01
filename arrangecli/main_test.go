package arrangecli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/diff"
	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/arrange/arrangecli"
	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/lib/geo"
	"oss.terrastruct.com/arrange/lib/log"
	"oss.terrastruct.com/arrange/lib/version"
	"oss.terrastruct.com/arrange/lib/xmain"
)

const chainJSON = `{
  "items": [{"id": "1"}, {"id": "2"}, {"id": "3"}, {"id": "4"}, {"id": "5"}],
  "relations": [{"source": "1", "target": "2"}, {"source": "2", "target": "3"}]
}`

const chainYAML = `strategy: hierarchy
options:
  spacing: 40
items:
  - id: "1"
  - id: "2"
  - id: "3"
relations:
  - {source: "1", target: "2"}
  - {source: "2", target: "3"}
`

type nopWriteCloser struct {
	*bytes.Buffer
}

func (nopWriteCloser) Close() error {
	return nil
}

func newState(t *testing.T, dir string, env []string, args ...string) (*xmain.State, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	ms := &xmain.State{
		Name:   "arrange",
		Stdin:  strings.NewReader(""),
		Stdout: nopWriteCloser{stdout},
		Stderr: nopWriteCloser{&bytes.Buffer{}},
		Env:    xos.NewEnv(env),
	}
	ms.Log = cmdlog.NewTB(ms.Env, t)
	for i, a := range args {
		if strings.HasPrefix(a, "./") {
			args[i] = filepath.Join(dir, a)
		}
	}
	ms.Opts = xmain.NewOpts(ms.Env, ms.Log, args)
	return ms, stdout
}

func readResult(t *testing.T, path string) arrangegraph.Result {
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var res arrangegraph.Result
	require.NoError(t, json.Unmarshal(b, &res))
	return res
}

func TestRun(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		files map[string]string
		env   []string
		args  []string
		run   func(t *testing.T, dir string, stdout *bytes.Buffer, err error)
	}{
		{
			name:  "default_output",
			files: map[string]string{"chain.json": chainJSON},
			args:  []string{"./chain.json"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				require.NoError(t, err)
				res := readResult(t, filepath.Join(dir, "chain.layout.json"))
				assert.Equal(t, arrangegraph.StrategyGrid, res.Strategy)
				require.Len(t, res.Items, 5)
				assert.NotNil(t, res.Bounds)
				for _, it := range res.Items {
					assert.Equal(t, arrangegraph.DEFAULT_WIDTH, it.Width)
				}
			},
		},
		{
			name:  "strategy_flag",
			files: map[string]string{"chain.json": chainJSON},
			args:  []string{"-s", "radial", "--spacing", "40", "./chain.json", "./out.json"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				require.NoError(t, err)
				res := readResult(t, filepath.Join(dir, "out.json"))
				assert.Equal(t, arrangegraph.StrategyRadial, res.Strategy)
				assert.Equal(t, geo.NewPoint(0, 0), res.Items[1].Position)
			},
		},
		{
			name:  "strategy_env",
			files: map[string]string{"chain.json": chainJSON},
			env:   []string{"ARRANGE_STRATEGY=hierarchy"},
			args:  []string{"./chain.json"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				require.NoError(t, err)
				res := readResult(t, filepath.Join(dir, "chain.layout.json"))
				assert.Equal(t, arrangegraph.StrategyHierarchy, res.Strategy)
				assert.Greater(t, res.Items[1].Position.Y, res.Items[0].Position.Y)
			},
		},
		{
			name:  "yaml_document_strategy",
			files: map[string]string{"chain.yaml": chainYAML},
			args:  []string{"./chain.yaml", "./chain.out.yaml"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				require.NoError(t, err)
				b, err := os.ReadFile(filepath.Join(dir, "chain.out.yaml"))
				require.NoError(t, err)
				assert.Contains(t, string(b), "strategy: hierarchy")
			},
		},
		{
			name:  "preview",
			files: map[string]string{"chain.json": chainJSON},
			args:  []string{"--preview", "./chain.png", "./chain.json"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				require.NoError(t, err)
				b, err := os.ReadFile(filepath.Join(dir, "chain.png"))
				require.NoError(t, err)
				assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
			},
		},
		{
			name:  "stdout",
			files: map[string]string{"chain.json": chainJSON},
			args:  []string{"-s", "organic", "-i", "10", "./chain.json", "-"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				require.NoError(t, err)
				var res arrangegraph.Result
				require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
				assert.Equal(t, arrangegraph.StrategyOrganic, res.Strategy)
				assert.Len(t, res.Items, 5)
			},
		},
		{
			name: "unknown_strategy",
			args: []string{"-s", "spiral", "./chain.json"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				var uerr xmain.UsageError
				require.True(t, errors.As(err, &uerr), "%v", err)
				assert.Contains(t, err.Error(), `unknown strategy "spiral"`)
			},
		},
		{
			name: "bad_spacing",
			args: []string{"--spacing=-4", "./chain.json"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				var uerr xmain.UsageError
				require.True(t, errors.As(err, &uerr), "%v", err)
			},
		},
		{
			name:  "bad_document",
			files: map[string]string{"bad.json": `{"items": [`},
			args:  []string{"./bad.json"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to lay out")
				_, statErr := os.Stat(filepath.Join(dir, "bad.layout.json"))
				assert.True(t, os.IsNotExist(statErr))
			},
		},
		{
			name: "too_many_args",
			args: []string{"a", "b", "c"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				assert.EqualError(t, err, "bad usage: too many arguments passed")
			},
		},
		{
			name: "version",
			args: []string{"version"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				require.NoError(t, err)
				diff.AssertStringEq(t, version.Version+"\n", stdout.String())
			},
		},
		{
			name: "help",
			args: []string{"--help"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				require.NoError(t, err)
				assert.Contains(t, stdout.String(), "arrange strategies [name]")
				assert.Contains(t, stdout.String(), "$ARRANGE_STRATEGY")
			},
		},
		{
			name: "strategies",
			args: []string{"strategies"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				require.NoError(t, err)
				for _, s := range arrangegraph.Strategies {
					assert.Contains(t, stdout.String(), string(s))
				}
			},
		},
		{
			name: "strategies_long",
			args: []string{"strategies", "organic"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(stdout.String(), "organic - "))
			},
		},
		{
			name: "strategies_unknown",
			args: []string{"strategies", "spiral"},
			run: func(t *testing.T, dir string, stdout *bytes.Buffer, err error) {
				var uerr xmain.UsageError
				assert.True(t, errors.As(err, &uerr), "%v", err)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for name, content := range tc.files {
				err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
				require.NoError(t, err)
			}

			ms, stdout := newState(t, dir, append([]string{"TEST_MODE=on"}, tc.env...), tc.args...)
			ctx := log.WithTB(context.Background(), t, nil)
			err := arrangecli.Run(ctx, ms)
			tc.run(t, dir, stdout, err)
		})
	}
}
