package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	{ // Error key is shortened and levels filter
		var buf bytes.Buffer
		log := NewWithWriter(&buf, slog.LevelInfo)
		log.Debug("hidden")
		log.Warn("degenerate element", "element", 7, "error", errors.New("det J = 0"))
		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "element=7")
		assert.Contains(t, out, `err="det J = 0"`)
	}
	{
		level, err := ParseLevel("DEBUG")
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, level)
		_, err = ParseLevel("loud")
		assert.Error(t, err)
		NewNop().Error("discarded")
	}
}
