package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromPath(t *testing.T) {
	cases := map[string]string{
		"my-post.md":           "my-post",
		"my-post.mdx":          "my-post",
		"my-post/index.mdx":    "my-post",
		"my-post/index.md":     "my-post",
		"trip/day-1.md":        "trip/day-1",
		"trip/day-2/index.mdx": "trip/day-2",
		"index.md":             "",
	}
	for in, want := range cases {
		require.Equal(t, want, FromPath(in), in)
	}
}

func TestIsDocument(t *testing.T) {
	require.True(t, IsDocument("a.md"))
	require.True(t, IsDocument("a.mdx"))
	require.False(t, IsDocument("a.png"))
	require.False(t, IsDocument("a.md.bak"))
	require.False(t, IsDocument("readme"))
}

func TestIsSubpostAndParent(t *testing.T) {
	require.False(t, IsSubpost("trip"))
	require.True(t, IsSubpost("trip/day-1"))
	require.Equal(t, "trip", Parent("trip/day-1"))
	require.Equal(t, "trip", Parent("trip"))
	require.Equal(t, "day-1", Local("trip/day-1"))
	require.Equal(t, "", Local("trip"))
}

func TestTwoSeparatorsStayOneLevelDeep(t *testing.T) {
	s := "trip/day-1/morning"
	require.True(t, IsSubpost(s))
	require.Equal(t, "trip", Parent(s))
	require.Equal(t, "day-1/morning", Local(s))
}

func TestValid(t *testing.T) {
	require.True(t, Valid("trip"))
	require.True(t, Valid("trip/day-1"))
	require.False(t, Valid(""))
	require.False(t, Valid("../etc/passwd"))
	require.False(t, Valid("trip/../x"))
	require.False(t, Valid("trip//x"))
	require.False(t, Valid("/trip"))
	require.False(t, Valid("trip\\x"))
}
