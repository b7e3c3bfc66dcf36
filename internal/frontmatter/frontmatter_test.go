package frontmatter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: Hello\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_LeadingByteOrderMark(t *testing.T) {
	fm, body, had, err := Split([]byte("\ufeff---\ntitle: A\n---\nbody"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: A\n"), fm)
	require.Equal(t, []byte("body"), body)
}

func TestSplit_CRLF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\ntitle: Hello\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyBlock(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\nbody\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("body\n"), body)
}

func TestSplit_ClosingAtEOF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: x\n"), fm)
	require.Empty(t, body)
}

func TestSplit_LongerDashLineIsNotADelimiter(t *testing.T) {
	fm, body, had, err := Split([]byte("---\na: 1\n-----\nb: 2\n---\nbody"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("a: 1\n-----\nb: 2\n"), fm)
	require.Equal(t, []byte("body"), body)
}

func TestSplit_MissingClosingDelimiter(t *testing.T) {
	_, _, had, err := Split([]byte("---\ntitle: x\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

type sample struct {
	Title string   `yaml:"title"`
	Date  Date     `yaml:"date"`
	Tags  []string `yaml:"tags"`
	Order int      `yaml:"order"`
}

func TestDecode_TypedFields(t *testing.T) {
	var s sample
	err := Decode([]byte("title: Hello\ndate: 2024-03-01\ntags: [a, b]\norder: 2\nextra: ignored\n"), &s)
	require.NoError(t, err)
	require.Equal(t, "Hello", s.Title)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), s.Date.Time)
	require.Equal(t, []string{"a", "b"}, s.Tags)
	require.Equal(t, 2, s.Order)
}

func TestDecode_Empty(t *testing.T) {
	var s sample
	require.NoError(t, Decode(nil, &s))
	require.True(t, s.Date.IsZero())
}

func TestDecode_InvalidYAML(t *testing.T) {
	var s sample
	require.Error(t, Decode([]byte("title: [unclosed\n"), &s))
}

func TestDecode_InvalidDate(t *testing.T) {
	var s sample
	err := Decode([]byte("date: not-a-date\n"), &s)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not-a-date")
}

func TestDecode_EmptyDateIsZero(t *testing.T) {
	var s sample
	require.NoError(t, Decode([]byte("date:\n"), &s))
	require.True(t, s.Date.IsZero())
}

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-03-01", "2024/03/01", "March 1, 2024", "Mar 1, 2024", "2024-03-01T00:00:00Z"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		require.True(t, want.Equal(got), in)
	}
}
