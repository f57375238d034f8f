package jobboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractDescriptionFromHTML(t *testing.T) {
	html := `<html><body><div data-qa="vacancy-description"><p>Looking for a Go engineer.</p></div></body></html>`
	description, err := extractDescriptionFromHTML(html)
	require.NoError(t, err)
	require.Equal(t, "<p>Looking for a Go engineer.</p>", description)
}

func TestExtractDescriptionFromHTML_NoMatch(t *testing.T) {
	html := `<html><body><div>nothing here</div></body></html>`
	description, err := extractDescriptionFromHTML(html)
	require.NoError(t, err)
	require.Empty(t, description)
}
