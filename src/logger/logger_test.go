package logger

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Run("parses the level", func(t *testing.T) {
		require.NoError(t, Setup("debug", false))
		assert.Equal(t, log.DebugLevel, log.GetLevel())
	})

	t.Run("defaults to info", func(t *testing.T) {
		require.NoError(t, Setup("", true))
		assert.Equal(t, log.InfoLevel, log.GetLevel())
	})

	t.Run("invalid level", func(t *testing.T) {
		assert.Error(t, Setup("loud", false))
	})
}
