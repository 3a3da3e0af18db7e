package fetch

import (
	"context"
	stdErrors "errors"
	"testing"

	"github.com/chromedp/chromedp"
	"github.com/lepinkainen/keepers/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserFetcher_WrapsRunnerError(t *testing.T) {
	orig := chromedpRunner
	t.Cleanup(func() { chromedpRunner = orig })

	var actions int
	chromedpRunner = func(ctx context.Context, acts ...chromedp.Action) error {
		actions = len(acts)
		return stdErrors.New("chrome not found")
	}

	_, err := NewBrowserFetcher(testOptions()).Fetch(context.Background(), "https://fbref.com/")
	require.Error(t, err)
	assert.True(t, errors.IsFetchError(err))
	assert.Contains(t, err.Error(), "chrome not found")
	assert.Equal(t, 3, actions)
}

func TestBuildExecAllocatorOptions(t *testing.T) {
	opts := buildExecAllocatorOptions(DefaultOptions())
	assert.Len(t, opts, 8)
}
