package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	b, err := MarshalCanonical(map[string]any{
		"zulu":  "z",
		"alpha": "a",
		"mike":  "m",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"a","mike":"m","zulu":"z"}`, string(b))
}

func TestMarshalCanonical_NestedDeterminism(t *testing.T) {
	v := map[string]any{
		"outcomes": []any{
			map[string]any{"scenario": "b", "pass": true},
			map[string]any{"scenario": "a", "pass": false},
		},
		"passed": 1,
	}

	first, err := MarshalCanonical(v)
	require.NoError(t, err)
	second, err := MarshalCanonical(v)
	require.NoError(t, err)

	// Array order is preserved; only object keys are sorted.
	assert.Equal(t, first, second)
	assert.Equal(t,
		`{"outcomes":[{"pass":true,"scenario":"b"},{"pass":false,"scenario":"a"}],"passed":1}`,
		string(first))
}

func TestMarshalCanonical_Scalars(t *testing.T) {
	for _, tt := range []struct {
		in   any
		want string
	}{
		{true, "true"},
		{false, "false"},
		{int(42), "42"},
		{int64(-7), "-7"},
		{"plain", `"plain"`},
	} {
		b, err := MarshalCanonical(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(b))
	}
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// Decomposed e + combining acute normalizes to the single code point.
	b, err := MarshalCanonical("é")
	require.NoError(t, err)
	assert.Equal(t, `"é"`, string(b))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	b, err := MarshalCanonical("<status> & friends")
	require.NoError(t, err)
	assert.Equal(t, `"<status> & friends"`, string(b))
}

func TestMarshalCanonical_RejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(3.14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")

	_, err = MarshalCanonical(map[string]any{"duration": 1.5})
	require.Error(t, err)
}

func TestMarshalCanonical_RejectsNull(t *testing.T) {
	_, err := MarshalCanonical(nil)
	require.Error(t, err)

	_, err = MarshalCanonical([]any{nil})
	require.Error(t, err)
}

func TestMarshalCanonical_RejectsUnsupportedTypes(t *testing.T) {
	_, err := MarshalCanonical(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}
