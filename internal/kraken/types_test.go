package kraken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAnswer_Success(t *testing.T) {
	a, err := DecodeAnswer([]byte(`{"error":[],"result":{"unixtime":1700000000}}`))
	require.NoError(t, err)

	assert.Empty(t, a.Error)
	assert.JSONEq(t, `{"unixtime":1700000000}`, string(a.Result))
	assert.NoError(t, a.Err())
}

func TestDecodeAnswer_NotJSON(t *testing.T) {
	_, err := DecodeAnswer([]byte(`<html>gateway timeout</html>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode answer envelope")
}

func TestAnswer_Err_APIErrors(t *testing.T) {
	a, err := DecodeAnswer([]byte(`{"error":["EAPI:Invalid key"],"result":null}`))
	require.NoError(t, err)

	err = a.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EAPI:Invalid key")
}

func TestAnswer_Err_MultipleAPIErrors(t *testing.T) {
	a, err := DecodeAnswer([]byte(`{"error":["EAPI:Invalid nonce","EGeneral:Internal error"],"result":null}`))
	require.NoError(t, err)

	err = a.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EAPI:Invalid nonce; EGeneral:Internal error")
}

func TestAnswer_Err_MissingResult(t *testing.T) {
	for _, body := range []string{
		`{"error":[]}`,
		`{"error":[],"result":null}`,
	} {
		a, err := DecodeAnswer([]byte(body))
		require.NoError(t, err)
		assert.Error(t, a.Err(), "body: %s", body)
	}
}
