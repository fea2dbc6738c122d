package validate

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	assert.Equal(t, 1.29, Price("1.29"))
	assert.Equal(t, 3.0, Price(" 3 "))
	assert.Equal(t, 0.0, Price("abc"))
	assert.Equal(t, 0.0, Price(""))
	assert.Equal(t, 0.0, Price("-4"))
}

func TestExpiryDate(t *testing.T) {
	d, ok := ExpiryDate("2024-01-31", time.UTC)
	assert.True(t, ok)
	assert.True(t, d.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))

	d, ok = ExpiryDate("2024-02-01T10:00:00Z", nil)
	assert.True(t, ok)
	assert.Equal(t, 10, d.Hour())

	_, ok = ExpiryDate("", time.UTC)
	assert.False(t, ok)
	_, ok = ExpiryDate("not a date", time.UTC)
	assert.False(t, ok)
}

func TestNotifyDays(t *testing.T) {
	assert.Equal(t, 14, NotifyDays("14"))
	assert.Equal(t, 30, NotifyDays("x"))
	assert.Equal(t, 30, NotifyDays(""))
	assert.Equal(t, 90, NotifyDays("365"))
	assert.Equal(t, 1, NotifyDays("-5"))
}

func TestQ(t *testing.T) {
	q, ok := Q("  ba ")
	assert.Equal(t, "ba", q)
	assert.False(t, ok)

	q, ok = Q("bar")
	assert.True(t, ok)
	assert.Equal(t, "bar", q)
}

func TestIdentifiers(t *testing.T) {
	_, ok := ID("0b6c1f7e-4a8e-4c1e-9f7d-2b8e5f9a1c3d")
	assert.True(t, ok)
	_, ok = ID("../etc")
	assert.False(t, ok)

	b, ok := Barcode(" 4006381333931 ")
	assert.True(t, ok)
	assert.Equal(t, "4006381333931", b)
	_, ok = Barcode("")
	assert.False(t, ok)
	_, ok = Barcode("<script>")
	assert.False(t, ok)
}

func TestEmails(t *testing.T) {
	_, ok := Email("ops@shop.test")
	assert.True(t, ok)
	_, ok = Email("nope")
	assert.False(t, ok)

	e, ok := NotificationEmail("  ")
	assert.True(t, ok)
	assert.Equal(t, "", e)
	_, ok = NotificationEmail("bad@")
	assert.False(t, ok)
}

func TestNameAndCheckbox(t *testing.T) {
	n, ok := Name("  Whole Milk ")
	assert.True(t, ok)
	assert.Equal(t, "Whole Milk", n)
	_, ok = Name("   ")
	assert.False(t, ok)

	assert.True(t, Checkbox("on"))
	assert.False(t, Checkbox(""))
}

func TestTruncationKeepsWholeRunes(t *testing.T) {
	q, ok := Q(strings.Repeat("a", 49) + "éclair")
	assert.True(t, ok)
	assert.True(t, utf8.ValidString(q))
	assert.Equal(t, strings.Repeat("a", 49)+"é", q)

	o := Optional(strings.Repeat("x", 63) + "üz")
	assert.True(t, utf8.ValidString(o))
	assert.Equal(t, strings.Repeat("x", 63)+"ü", o)

	assert.Equal(t, "Chargé", Optional("Chargé"))
}

func TestQCountsRunes(t *testing.T) {
	_, ok := Q("çé")
	assert.False(t, ok)
	_, ok = Q("çéü")
	assert.True(t, ok)
}
