package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{name: "in the future", expiresAt: now.Add(time.Second), want: false},
		{name: "exactly now", expiresAt: now, want: true},
		{name: "in the past", expiresAt: now.Add(-time.Second), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Session{ExpiresAt: tt.expiresAt}.Expired(now))
		})
	}
}
