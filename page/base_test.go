package page

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutMillis(t *testing.T) {
	tests := []struct {
		name     string
		budget   time.Duration
		expected float64
	}{
		{name: "zero", budget: 0, expected: 1},
		{name: "negative", budget: -time.Second, expected: 1},
		{name: "sub millisecond", budget: 500 * time.Microsecond, expected: 1},
		{name: "seconds", budget: 2 * time.Second, expected: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timeoutMillis(tt.budget)
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.expected, *got)
			}
		})
	}
}
