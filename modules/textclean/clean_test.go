package textclean_test

import (
	"testing"

	"github.com/andreypavlenko/jobmatch/modules/textclean"
	"github.com/stretchr/testify/require"
)

func TestCleanParagraphsAndBreaks(t *testing.T) {
	in := "<p>Line one</p><p>Line two<br>Line three</p>"
	out := textclean.Clean(in)
	require.Equal(t, "Line one\n\nLine two\nLine three", out)
}

func TestCleanListItems(t *testing.T) {
	in := "<ul><li>First</li><li>Second</li></ul>"
	out := textclean.Clean(in)
	require.Contains(t, out, "First")
	require.Contains(t, out, "Second")
	require.NotContains(t, out, "\n\n\n")
}

func TestCleanCollapsesHorizontalWhitespace(t *testing.T) {
	in := "<p>Too   many\t\tspaces</p>"
	out := textclean.Clean(in)
	require.Equal(t, "Too many spaces", out)
}

func TestCleanDecodesEntities(t *testing.T) {
	in := "<p>Tom &amp; Jerry &mdash; 5&nbsp;&gt;&nbsp;3</p>"
	out := textclean.Clean(in)
	require.Contains(t, out, "Tom & Jerry")
	require.Contains(t, out, "5 > 3")
}

func TestCleanCollapsesExcessiveNewlines(t *testing.T) {
	in := "<div>A</div><div></div><div></div><div>B</div>"
	out := textclean.Clean(in)
	require.NotContains(t, out, "\n\n\n")
}

func TestCleanPlainTextPassesThrough(t *testing.T) {
	out := textclean.Clean("just plain text")
	require.Equal(t, "just plain text", out)
}
