package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	tests := []struct {
		name      string
		succeeded int
		failed    int
		want      float64
	}{
		{"all succeeded", 2, 0, 100.0},
		{"half succeeded", 1, 1, 50.0},
		{"all failed", 0, 2, 0.0},
		{"one third rounds to one decimal", 1, 2, 33.3},
		{"two thirds rounds to one decimal", 2, 1, 66.7},
		{"empty run", 0, 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rate(tt.succeeded, tt.failed))
		})
	}
}

func TestFinish(t *testing.T) {
	c := New("run-1")
	c.Record("d0", true)
	c.Record("d1", false)

	end := time.Now()
	c.Finish(end)

	assert.Equal(t, 2, c.Attempted)
	assert.Equal(t, 1, c.Succeeded)
	assert.Equal(t, 1, c.Failed)
	assert.Equal(t, 50.0, c.SuccessRate)
	assert.Equal(t, end, c.EndTime)
	assert.False(t, c.StartTime.IsZero())
}
