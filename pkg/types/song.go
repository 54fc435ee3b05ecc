package types

import "fmt"

// Scroll speed bounds offered to the user, and the speed given to new songs.
const (
	MinScrollSpeed     = 1
	MaxScrollSpeed     = 10
	DefaultScrollSpeed = 2
)

// Song is a persisted record of lyrics, chord annotations and the speed at
// which the scroll screen advances through them.
type Song struct {
	SongID      int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Body        string `json:"body" yaml:"body"`
	Chords      string `json:"chords" yaml:"chords"`
	ScrollSpeed int    `json:"scrollspeed" yaml:"scrollspeed"`
}

// ValidateStoredSpeed reports ErrInvalidSpeed unless speed is positive.
// The store accepts any positive speed; the [MinScrollSpeed, MaxScrollSpeed]
// range is enforced where the user picks a speed.
func ValidateStoredSpeed(speed int) error {
	if speed < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSpeed, speed)
	}
	return nil
}

// ValidateSelectableSpeed reports ErrInvalidSpeed unless speed lies within
// [MinScrollSpeed, MaxScrollSpeed].
func ValidateSelectableSpeed(speed int) error {
	if speed < MinScrollSpeed || speed > MaxScrollSpeed {
		return fmt.Errorf("%w: %d (valid: %d-%d)", ErrInvalidSpeed, speed, MinScrollSpeed, MaxScrollSpeed)
	}
	return nil
}

// Display returns the text shown on the scroll screen: chord annotations,
// when present, above the lyrics.
func (s *Song) Display() string {
	if s.Chords == "" {
		return s.Body
	}
	return s.Chords + "\n\n" + s.Body
}
