package xmain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/arrange/lib/xmain"
)

func TestOptsEnvFallback(t *testing.T) {
	t.Parallel()

	env := xos.NewEnv([]string{"ARRANGE_SPACING=12.5", "ARRANGE_ITERATIONS=30", "ARRANGE_WATCH=1", "ARRANGE_STRATEGY=radial"})
	opts := xmain.NewOpts(env, nil, []string{"--iterations", "40"})

	spacing, err := opts.Float64("ARRANGE_SPACING", "spacing", "", 50, "")
	require.NoError(t, err)
	iterations, err := opts.Int64("ARRANGE_ITERATIONS", "iterations", "i", 200, "")
	require.NoError(t, err)
	watch, err := opts.Bool("ARRANGE_WATCH", "watch", "w", false, "")
	require.NoError(t, err)
	strategy := opts.String("ARRANGE_STRATEGY", "strategy", "s", "grid", "")

	require.NoError(t, opts.Flags.Parse(opts.Args))

	assert.Equal(t, 12.5, *spacing)
	assert.Equal(t, int64(40), *iterations, "flags take precedence over env")
	assert.True(t, *watch)
	assert.Equal(t, "radial", *strategy)
	assert.Contains(t, opts.Help(), "$ARRANGE_SPACING")
}

func TestOptsInvalidEnv(t *testing.T) {
	t.Parallel()

	env := xos.NewEnv([]string{"ARRANGE_WATCH=maybe", "ARRANGE_SPACING=wide"})
	opts := xmain.NewOpts(env, nil, nil)

	_, err := opts.Bool("ARRANGE_WATCH", "watch", "w", false, "")
	assert.Error(t, err)
	_, err = opts.Float64("ARRANGE_SPACING", "spacing", "", 50, "")
	assert.Error(t, err)
}

func TestUsageError(t *testing.T) {
	err := xmain.UsageErrorf("unknown strategy %q", "spiral")
	assert.Equal(t, `bad usage: unknown strategy "spiral"`, err.Error())

	eerr := xmain.ExitError{Code: 2, Message: "layout timed out"}
	assert.Equal(t, "exiting with code 2: layout timed out", eerr.Error())
}

func TestOptsChanged(t *testing.T) {
	t.Parallel()

	env := xos.NewEnv([]string{"ARRANGE_DIRECTION=LR"})
	opts := xmain.NewOpts(env, nil, []string{"--spacing=10"})

	opts.String("ARRANGE_DIRECTION", "direction", "", "TB", "")
	_, err := opts.Float64("ARRANGE_SPACING", "spacing", "", 50, "")
	require.NoError(t, err)
	opts.String("ARRANGE_SORT_BY", "sort-by", "", "label", "")
	require.NoError(t, opts.Flags.Parse(opts.Args))

	assert.True(t, opts.Changed("direction"))
	assert.True(t, opts.Changed("spacing"))
	assert.False(t, opts.Changed("sort-by"))
	assert.False(t, opts.Changed("missing"))
	assert.Contains(t, opts.Help(), "--sort-by")
}
