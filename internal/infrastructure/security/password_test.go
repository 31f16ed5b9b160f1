package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("S3cure!pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "S3cure!pass", hash)

	assert.True(t, VerifyPassword("S3cure!pass", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := HashPassword("S3cure!pass")
	require.NoError(t, err)
	second, err := HashPassword("S3cure!pass")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, first, second)
}

func TestGenerateIDs(t *testing.T) {
	userID := GenerateUserID()
	assert.Contains(t, userID, "user_")

	messageID := GenerateMessageID()
	assert.Contains(t, messageID, "msg_")

	assert.NotEqual(t, GenerateULID(), GenerateULID())
}
