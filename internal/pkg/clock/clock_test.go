package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockers(t *testing.T) {
	now := New().Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)

	pinned := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, pinned, Fixed(pinned).Now())
}
