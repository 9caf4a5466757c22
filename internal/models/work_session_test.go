package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEffectiveDistance(t *testing.T) {
	logs := []KilometerLog{
		{Label: "aller", DistanceKm: 12.5},
		{Label: "retour", DistanceKm: 12.5},
	}

	t.Run("Override Wins", func(t *testing.T) {
		override := 40.0
		assert.Equal(t, 40.0, ResolveEffectiveDistance(&override, logs))
	})

	t.Run("Sum Of Logs", func(t *testing.T) {
		assert.Equal(t, 25.0, ResolveEffectiveDistance(nil, logs))
	})

	t.Run("No Logs No Override", func(t *testing.T) {
		assert.Equal(t, 0.0, ResolveEffectiveDistance(nil, nil))
	})
}
