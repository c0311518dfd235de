package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	occurredAt := time.Date(2025, 6, 14, 10, 30, 0, 123456789, time.UTC)
	createdAt := time.Date(2025, 6, 14, 10, 30, 1, 987654321, time.UTC)
	id := "3f8a1c1e-9f2b-4d6a-a1f0-5b9c8d7e6f50"

	token := EncodeToken(occurredAt, createdAt, id)
	require.NotEmpty(t, token)

	gotOccurred, gotCreated, gotID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, occurredAt.Equal(gotOccurred))
	assert.True(t, createdAt.Equal(gotCreated))
	assert.Equal(t, id, gotID)
}

func TestEncodeDecodeToken_IDSurvivesEqualTimestamps(t *testing.T) {
	at := time.Date(2025, 6, 14, 10, 30, 0, 0, time.UTC)

	tokenA := EncodeToken(at, at, "txn-a")
	tokenB := EncodeToken(at, at, "txn-b")
	require.NotEqual(t, tokenA, tokenB)

	_, _, gotID, err := DecodeToken(tokenA)
	require.NoError(t, err)
	assert.Equal(t, "txn-a", gotID)
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, _, err := DecodeToken("not-valid-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	_, _, _, err := DecodeToken("bm8gc2VwYXJhdG9yIGhlcmU=")
	assert.Error(t, err)
}

func TestDecodeToken_BadTimestamps(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("not|atime|some-id"))
	_, _, _, err := DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeToken_EmptyID(t *testing.T) {
	at := time.Date(2025, 6, 14, 10, 30, 0, 0, time.UTC)
	token := base64.StdEncoding.EncodeToString([]byte(at.Format(timeFormat) + "|" + at.Format(timeFormat) + "|"))
	_, _, _, err := DecodeToken(token)
	assert.Error(t, err)
}
