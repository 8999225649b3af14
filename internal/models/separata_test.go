package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVigency(t *testing.T) {
	today := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		endDate time.Time
		want    Vigency
	}{
		{"ended yesterday", time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), VigencyEnded},
		{"ends today is still active", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), VigencyActive},
		{"ends later", time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), VigencyActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Separata{
				StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   tt.endDate,
			}
			assert.Equal(t, tt.want, s.Vigency(today))
		})
	}
}
