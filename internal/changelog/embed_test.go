package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate(t *testing.T) {
	t.Parallel()

	content := Template()
	require.NotEmpty(t, content, "embedded template should not be empty")
	assert.Contains(t, content, "# Changelog")
	assert.Contains(t, content, "## Unreleased")
}

func TestNew(t *testing.T) {
	t.Parallel()

	doc := New(nil)
	require.NotNil(t, doc)

	assert.Equal(t, "Changelog", doc.Title())
	require.Len(t, doc.Versions(), 1)
	assert.True(t, doc.Versions()[0].IsUnreleased())
	assert.False(t, doc.HasChanges())

	result := doc.Validate()
	assert.True(t, result.IsValid(), "template should pass the default rulebook: %v", result.Errors)
}
