package objectid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDecodeRoundTrip(t *testing.T) {
	id := primitive.NewObjectID()

	decoded, err := Decode(Encode(id))
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"alice",
		"123",
		"65f1c2a9e4b0a1b2c3d4e5f",   // 23 chars
		"65f1c2a9e4b0a1b2c3d4e5f6a", // 25 chars
		"zzf1c2a9e4b0a1b2c3d4e5f6",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Decode(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidIdentifier))
			assert.False(t, IsValid(raw))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("65f1c2a9e4b0a1b2c3d4e5f6"))
}
