package socket

import (
	"testing"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartMode(t *testing.T) {
	mode, err := startMode(`{"mode": "simultaneous"}`)
	require.NoError(t, err)
	assert.Equal(t, models.Simultaneous, mode)

	for _, body := range []string{"", "  ", `{}`} {
		mode, err = startMode(body)
		require.NoError(t, err, body)
		assert.Empty(t, mode, body)
	}

	_, err = startMode(`{"mode":`)
	assert.ErrorIs(t, err, ErrMalformedMessage)
	_, err = startMode(`"turn-based"`)
	assert.ErrorIs(t, err, ErrMalformedMessage)
}
