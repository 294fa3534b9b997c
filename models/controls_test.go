package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Mixed_Drill ")
	require.NoError(t, err)
	assert.Equal(t, ModeMixedDrill, m)

	_, err = ParseMode("pharmacology")
	assert.True(t, IsValidationError(err))
}

func TestControlsNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Controls
		wantMode Mode
		wantDiff Difficulty
		wantErr  bool
	}{
		{name: "empty defaults", in: Controls{}, wantMode: ModePriority, wantDiff: DifficultyMedium},
		{name: "case folded", in: Controls{Mode: "QUIZ", Difficulty: "Hard"}, wantMode: ModeQuiz, wantDiff: DifficultyHard},
		{name: "unknown mode", in: Controls{Mode: "trivia"}, wantErr: true},
		{name: "unknown difficulty", in: Controls{Mode: ModeQuiz, Difficulty: "brutal"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.in
			err := c.Normalize()
			if tt.wantErr {
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, c.Mode)
			assert.Equal(t, tt.wantDiff, c.Difficulty)
		})
	}
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "NGN Case", (&Case{}).DisplayTitle())
	assert.Equal(t, "Sepsis", (&Case{Title: "Sepsis"}).DisplayTitle())
}
