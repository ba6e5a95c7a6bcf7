package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListeners(t *testing.T) {
	html := `<table><tr><td>Current Listeners: <td>42</td></tr></table>`
	listeners, err := ParseListeners(html)
	require.NoError(t, err)
	assert.Equal(t, 42, listeners)
}

func TestParseListeners_NotFound(t *testing.T) {
	_, err := ParseListeners("<html><body>offline</body></html>")
	assert.Error(t, err)
}
