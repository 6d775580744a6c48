package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	tok, err := GenerateToken("secret", "analyst@example.com", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "analyst@example.com", claims.Subject)
	assert.Equal(t, "admin", claims.Role)

	_, err = VerifyToken("other", tok)
	assert.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	tok, err := GenerateToken("secret", "cli", "", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken("secret", tok)
	assert.Error(t, err)
}

func TestToken_NoSecret(t *testing.T) {
	_, err := GenerateToken("", "cli", "", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
	_, err = VerifyToken("", "x")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestShareToken(t *testing.T) {
	tok, err := GenerateShareToken()
	require.NoError(t, err)
	hash, err := HashShareToken(tok)
	require.NoError(t, err)

	assert.True(t, VerifyShareToken(hash, tok))
	assert.False(t, VerifyShareToken(hash, tok+"x"))
	assert.False(t, VerifyShareToken("", tok))

	_, err = HashShareToken("")
	assert.Error(t, err)
}

func TestParseRunOptions(t *testing.T) {
	o, err := ParseRunOptions([]byte(`{"lowest_count": 500, "skip_charts": true, "columns": {"track": "Cohort"}}`))
	require.NoError(t, err)

	require.NotNil(t, o.LowestCount.Value)
	assert.Equal(t, 100, *o.LowestCount.Value)
	assert.True(t, Bool(o.SkipCharts, false))
	assert.True(t, Bool(o.Workbook, true))
	require.NotNil(t, o.Columns)
	assert.Equal(t, "Cohort", o.Columns.Track)
	assert.Empty(t, o.Columns.NPS, "unset columns are left for the server defaults")

	_, err = ParseRunOptions([]byte(`{`))
	assert.Error(t, err)

	empty, err := ParseRunOptions(nil)
	require.NoError(t, err)
	assert.False(t, empty.LowestCount.Set)
}

func TestMergeRunOptions(t *testing.T) {
	yes, no := true, false
	three := 3
	base := &RunOptions{SkipCharts: &yes, LowestCount: NullableInt{Set: true, Value: &three}}
	patch := &RunOptions{SkipCharts: &no, LowestCount: NullableInt{Set: true}}

	got := MergeRunOptions(base, patch)

	assert.False(t, *got.SkipCharts)
	assert.Nil(t, got.LowestCount.Value)
	assert.True(t, *base.SkipCharts, "base is not modified")
}

func TestRunOptionsJSON(t *testing.T) {
	five := 5
	s, err := RunOptionsJSON(&RunOptions{LowestCount: NullableInt{Set: true, Value: &five}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"lowest_count": 5}`, s)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType("a/nps_analysis.PNG"))
	assert.Equal(t, "text/csv", ContentType("nps_results.csv"))
	assert.Equal(t, "application/octet-stream", ContentType("notes.txt"))
}
