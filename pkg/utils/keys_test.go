package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomObjectKeyExtensions(t *testing.T) {
	assert.True(t, strings.HasSuffix(RandomObjectKey("video/mp4"), ".mp4"))
	assert.True(t, strings.HasSuffix(RandomObjectKey("image/png"), ".png"))
	assert.True(t, strings.HasSuffix(RandomObjectKey("VIDEO/MP4"), ".mp4"))
	assert.True(t, strings.HasSuffix(RandomObjectKey("video/mp4; charset=binary"), ".mp4"))
	assert.True(t, strings.HasSuffix(RandomObjectKey("application/x-unknown"), ".bin"))
	assert.True(t, strings.HasSuffix(RandomObjectKey(""), ".bin"))
}

func TestRandomObjectKeyUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := RandomObjectKey("video/mp4")
		assert.False(t, seen[key])
		seen[key] = true
	}
}
