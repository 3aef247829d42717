package binding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(src), &data))
	return data
}

func TestInterpolate(t *testing.T) {
	data := decode(t, `{
		"student": {"name": "A-bêng", "class": 3},
		"words": ["a", "e", "i"],
		"rows": [{"text": "o͘"}]
	}`)

	require.Equal(t, "Siá-jī: A-bêng (3)", Interpolate("Siá-jī: ${student.name} (${student.class})", data))
	require.Equal(t, "a e i", Interpolate("${words[0]} ${words[1]} ${ words[2] }", data))
	require.Equal(t, "o͘ o͘", Interpolate("${rows[0].text} ${rows[0].text}", data))
}

func TestInterpolateKeepsUnresolved(t *testing.T) {
	data := decode(t, `{"words": ["a"]}`)

	require.Equal(t, "${missing}", Interpolate("${missing}", data))
	require.Equal(t, "${words[5]}", Interpolate("${words[5]}", data))
	require.Equal(t, "${words[x]}", Interpolate("${words[x]}", data))
	require.Equal(t, "${}", Interpolate("${}", data))
	require.Equal(t, "a ${words[0]", Interpolate("${words[0]} ${words[0]", data))
	require.Equal(t, "${words[0]}", Interpolate("${words[0]}", nil))
}

func TestLookup(t *testing.T) {
	data := decode(t, `{"a": {"b": [[1, 2], [3]]}}`)

	v, ok := Lookup(data, "a.b[1][0]")
	require.True(t, ok)
	require.Equal(t, 3.0, v)

	_, ok = Lookup(data, "a..b")
	require.False(t, ok)
}
