package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-01-10 ")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", FormatDate(d))

	for _, bad := range []string{"", "10-01-2025", "2025-1-10", "2025-02-30", "2025-01-10T00:00:00"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, "08:30:00", got)

	got, err = ParseClock("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, "23:59:59", got)

	for _, bad := range []string{"", "8:30", "24:00", "12:61", "noon"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatDateTimeLocal(t *testing.T) {
	ts := time.Date(2025, 3, 4, 5, 6, 7, 0, time.Local)
	assert.Equal(t, "2025-03-04 05:06:07", FormatDateTime(ts))
}

func TestEmailHelpers(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
	assert.True(t, LooksLikeEmail("ana@example.com"))
	for _, bad := range []string{"", "ana", "@example.com", "ana@", "ana@example", "an a@example.com", "ana@example."} {
		assert.False(t, LooksLikeEmail(bad), bad)
	}
}

func TestStringHelpers(t *testing.T) {
	assert.Equal(t, "Ana Maria", NormalizeSpace("  Ana \t Maria "))
	assert.Equal(t, "-", Safe("   ", "-"))
	assert.Equal(t, "x", Safe(" x ", "-"))
	assert.Equal(t, "", Deref(nil))

	assert.Equal(t, "NA", SafeFilenamePart(""))
	assert.Equal(t, "Ana_Lee_a_b", SafeFilenamePart("Ana Lee/a:b"))
	assert.Len(t, SafeFilenamePart("abcdefghijabcdefghijabcdefghijabcdefghijXYZ"), 40)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "350.00", FormatMoney(350))
	amount := 99.9
	assert.Equal(t, "99.90", FormatMoneyOr(&amount, "n/a"))
	assert.Equal(t, "n/a", FormatMoneyOr(nil, "n/a"))
}
