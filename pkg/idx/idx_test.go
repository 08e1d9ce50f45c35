package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := New()
	require.NotEqual(t, Zero, id)

	parsed, err := Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsJunk(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		_, err := Parse(s)
		require.ErrorIs(t, err, ErrInvalid, "input %q", s)
	}
}

func TestSameMillisecondIsOrdered(t *testing.T) {
	at := time.Unix(1_700_000_000, 0).UTC()
	a := newAt(at)
	b := newAt(at)
	require.Less(t, a.String(), b.String())
}
