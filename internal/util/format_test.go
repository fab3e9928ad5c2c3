package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1.0K", FormatCount(1000))
	assert.Equal(t, "45.3K", FormatCount(45321))
	assert.Equal(t, "2.5M", FormatCount(2500000))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "250µs", FormatElapsed(250*time.Microsecond))
	assert.Equal(t, "16ms", FormatElapsed(16*time.Millisecond))
	assert.Equal(t, "1.500s", FormatElapsed(1500*time.Millisecond))
	assert.Equal(t, "2m03.50s", FormatElapsed(2*time.Minute+3*time.Second+500*time.Millisecond))
}
