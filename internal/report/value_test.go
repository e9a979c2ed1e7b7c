package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValue_String(t *testing.T) {
	require.Equal(t, "", Null().String())
	require.Equal(t, "3.5", Number(3.5).String())
	require.Equal(t, "42", Number(42).String())
	require.Equal(t, "[printer]", Badge("", "printer").String())
	require.True(t, Timestamp(time.Time{}, dateLayout).IsNull())
}

func TestValue_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Row{"a": Null(), "b": Number(7), "c": Text("x"), "d": Badge("Open", "default")})
	require.NoError(t, err)
	require.JSONEq(t, `{"a":null,"b":7,"c":"x","d":{"text":"Open","hint":"default"}}`, string(b))
}

func TestDateRange(t *testing.T) {
	r, err := ParseDateRange("2024-01-01", "2024-01-31", time.UTC)
	require.NoError(t, err)
	require.True(t, r.Contains(day(2024, 1, 1, 0, 0)))
	require.True(t, r.Contains(day(2024, 1, 31, 23, 59)))
	require.False(t, r.Contains(day(2024, 2, 1, 0, 0)))
	require.False(t, r.Contains(day(2023, 12, 31, 23, 59)))
	require.True(t, r.Contains(time.Time{}))
	require.Equal(t, "2024-01-01", r.From())
	require.Equal(t, "2024-01-31", r.To())

	open, err := ParseDateRange("", "", time.UTC)
	require.NoError(t, err)
	require.True(t, open.IsZero())

	_, err = ParseDateRange("2024-02-01", "2024-01-01", time.UTC)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParseDateRange("01/02/2024", "", time.UTC)
	require.Error(t, err)

	same, err := ParseDateRange("2024-01-05", "2024-01-05", time.UTC)
	require.NoError(t, err)
	require.True(t, same.Contains(day(2024, 1, 5, 12, 0)))
}

func TestDateRange_LocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	r, err := ParseDateRange("2024-01-01", "2024-01-01", loc)
	require.NoError(t, err)
	// 03:00 UTC on Jan 1 is still Dec 31 in UTC-5.
	require.False(t, r.Contains(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)))
	require.True(t, r.Contains(time.Date(2024, 1, 2, 4, 59, 0, 0, time.UTC)))
}
