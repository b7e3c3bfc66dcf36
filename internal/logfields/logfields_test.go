package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	require.Equal(t, "", Error(nil).Value.String())
	require.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	require.Equal(t, KeyError, Error(nil).Key)
}

func TestAttrKeys(t *testing.T) {
	require.Equal(t, KeySlug, Slug("a").Key)
	require.Equal(t, KeyPath, Path("a").Key)
	require.Equal(t, KeyBuildID, BuildID("a").Key)
	require.Equal(t, int64(12), DurationMS(12).Value.Int64())
}
