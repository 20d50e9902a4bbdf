package pagination

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeSequenceToken(t *testing.T) {
	token := EncodeSequenceToken(42, "JE-0042")
	assert.NotEmpty(t, token, "Token should not be empty")

	seq, err := DecodeSequenceToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), seq)

	zero, err := DecodeSequenceToken(EncodeSequenceToken(0, ""))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), zero)
}

func TestDecodeSequenceTokenError(t *testing.T) {
	_, err := DecodeSequenceToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("42"))
	_, err = DecodeSequenceToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badSeq := base64.URLEncoding.EncodeToString([]byte("abc|JE-0001"))
	_, err = DecodeSequenceToken(badSeq)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sequence parse")
}

func TestMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")
	parts, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, parts)
}
