package xbrowser

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/xos"
)

func TestOpenDisabled(t *testing.T) {
	t.Parallel()

	env := xos.NewEnv([]string{"BROWSER=0"})
	assert.NoError(t, Open(context.Background(), env, "preview.png", io.Discard))
}

func TestOpenBrowserEnv(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "opened")
	env := xos.NewEnv([]string{"BROWSER=echo >" + out})
	err := Open(context.Background(), env, "preview.png", io.Discard)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "preview.png\n", string(b))
}

func TestOpenBrowserEnvFails(t *testing.T) {
	t.Parallel()

	env := xos.NewEnv([]string{"BROWSER=false"})
	err := Open(context.Background(), env, "preview.png", io.Discard)
	assert.Error(t, err)
}
