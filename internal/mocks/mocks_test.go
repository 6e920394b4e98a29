package mocks

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These mocks are maintained by hand.
var generatedMarker = regexp.MustCompile(`(?m)^// Code generated .* DO NOT EDIT\.$`)

func TestMocks_NotMarkedGenerated(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)

	checked := 0
	for _, f := range files {
		if strings.HasSuffix(f, "_test.go") {
			continue
		}
		src, err := os.ReadFile(f)
		require.NoError(t, err)
		assert.False(t, generatedMarker.Match(src), f)
		checked++
	}
	assert.NotZero(t, checked)
}
