package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tablier plombé", "tablier plombe"},
		{"  Protège-thyroïde ", "protege-thyroide"},
		{"Œil", "oeil"},
		{"already plain", "already plain"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tablier plombé Premium", "tablier-plombe-premium"},
		{"Gants radio-atténuants", "gants-radio-attenuants"},
		{"  --Paravent   mobile!! ", "paravent-mobile"},
		{"0,35 mm Pb", "0-35-mm-pb"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical("tablier-plombe-premium"))
	assert.False(t, IsCanonical("Tablier-Plombe"))
	assert.False(t, IsCanonical("tablier--plombe"))
	assert.False(t, IsCanonical(""))
}
