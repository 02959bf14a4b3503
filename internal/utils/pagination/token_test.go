package pagination

import (
	"testing"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	id := uuid.NewString()
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeCursor(domain.DocumentCursor{CreatedAt: createdAt, ID: id})
	assert.NotEmpty(t, token)

	decoded, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decoded.CreatedAt))
	assert.Equal(t, id, decoded.ID)

	// Non-UTC input round-trips to the same instant.
	local := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("IST", 5*3600+1800))
	decoded, err = DecodeCursor(EncodeCursor(domain.DocumentCursor{CreatedAt: local, ID: id}))
	require.NoError(t, err)
	assert.True(t, local.Equal(decoded.CreatedAt))
}

func TestDecodeCursorError(t *testing.T) {
	_, err := DecodeCursor("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeCursor("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeCursor(EncodeCursor(domain.DocumentCursor{CreatedAt: time.Now(), ID: "not-a-uuid"}))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id parse")
}

func TestNextToken(t *testing.T) {
	last := domain.DocumentCursor{CreatedAt: time.Now().UTC(), ID: uuid.NewString()}

	assert.Nil(t, NextToken(3, 10, last), "short page is the last page")
	assert.Nil(t, NextToken(0, 0, last))

	tok := NextToken(10, 10, last)
	require.NotNil(t, tok)
	decoded, err := DecodeCursor(*tok)
	require.NoError(t, err)
	assert.Equal(t, last.ID, decoded.ID)
}
