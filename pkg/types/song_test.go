package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStoredSpeed(t *testing.T) {
	tests := []struct {
		name    string
		speed   int
		wantErr bool
	}{
		{name: "zero is rejected", speed: 0, wantErr: true},
		{name: "negative is rejected", speed: -3, wantErr: true},
		{name: "one is accepted", speed: 1},
		{name: "above the selectable range is still storable", speed: 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStoredSpeed(tt.speed)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidSpeed), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateSelectableSpeed(t *testing.T) {
	for speed := MinScrollSpeed; speed <= MaxScrollSpeed; speed++ {
		assert.NoError(t, ValidateSelectableSpeed(speed), "speed %d", speed)
	}
	assert.ErrorIs(t, ValidateSelectableSpeed(0), ErrInvalidSpeed)
	assert.ErrorIs(t, ValidateSelectableSpeed(MaxScrollSpeed+1), ErrInvalidSpeed)
}

func TestSongDisplay(t *testing.T) {
	t.Run("body only when chords are empty", func(t *testing.T) {
		s := Song{Body: "Amazing grace"}
		assert.Equal(t, "Amazing grace", s.Display())
	})

	t.Run("chords above body", func(t *testing.T) {
		s := Song{Body: "Amazing grace", Chords: "G C G D"}
		assert.Equal(t, "G C G D\n\nAmazing grace", s.Display())
	})
}
