package validation

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type file struct {
	size int64
	mime string
}

func (f file) FileSize() int64  { return f.size }
func (f file) FileMIME() string { return f.mime }

type day struct{ t time.Time }

func (d day) Time() time.Time { return d.t }

func TestRequired(t *testing.T) {
	rule := Required("required")
	var nilString *string
	blank := "   "
	zero := 0
	f := false

	cases := []struct {
		name  string
		value interface{}
		ok    bool
	}{
		{"nil", nil, false},
		{"nil pointer", nilString, false},
		{"empty string", "", false},
		{"blank string", blank, false},
		{"pointer to blank", &blank, false},
		{"text", "Jane", true},
		{"empty slice", []string{}, false},
		{"slice", []string{"Go"}, true},
		{"zero int pointer", &zero, true},
		{"false pointer", &f, true},
		{"zero date", day{}, false},
		{"date", day{t: time.Now()}, true},
	}
	for _, tc := range cases {
		t.Run("Should handle "+tc.name, func(t *testing.T) {
			ok, reason := rule.Check(tc.value)
			assert.Equal(t, tc.ok, ok)
			if !ok {
				assert.Equal(t, "required", reason)
			}
		})
	}
}

func TestLengthRules(t *testing.T) {
	t.Run("Should count characters, not bytes", func(t *testing.T) {
		ok, _ := MinLength(3, "short").Check("Zoë")
		assert.True(t, ok)
		ok, _ = MaxLength(2, "long").Check("Zoë")
		assert.False(t, ok)
	})

	t.Run("Should count collection items", func(t *testing.T) {
		ok, reason := MinLength(3, "pick 3").Check([]string{"a", "b"})
		assert.False(t, ok)
		assert.Equal(t, "pick 3", reason)
	})

	t.Run("Should let empty values through", func(t *testing.T) {
		ok, _ := MinLength(3, "short").Check("")
		assert.True(t, ok)
	})
}

func TestNumberRange(t *testing.T) {
	rule := NumberRange(50, 150, "out of range")
	fifty := 50
	cases := []struct {
		value interface{}
		ok    bool
	}{
		{49.99, false},
		{50, true},
		{&fifty, true},
		{150.0, true},
		{151, false},
		{nil, true},
		{"100", false},
	}
	for _, tc := range cases {
		ok, _ := rule.Check(tc.value)
		assert.Equal(t, tc.ok, ok, "%v", tc.value)
	}
}

func TestPatternAndEnum(t *testing.T) {
	clock := Pattern(ClockRegex, "bad time")
	for value, want := range map[string]bool{"09:00": true, "23:59": true, "24:00": false, "9:00": false, "": true} {
		ok, _ := clock.Check(value)
		assert.Equal(t, want, ok, value)
	}

	hex := Pattern(regexp.MustCompile(`^[0-9a-f]+$`), "not hex")
	ok, reason := hex.Check("xyz")
	assert.False(t, ok)
	assert.Equal(t, "not hex", reason)

	enum := OneOf([]string{"HR", "Finance"}, "invalid")
	ok, _ = enum.Check("HR")
	assert.True(t, ok)
	ok, _ = enum.Check("hr")
	assert.False(t, ok)
}

func TestEmailAndTags(t *testing.T) {
	ok, _ := Email("bad").Check("jane@example.com")
	assert.True(t, ok)
	ok, _ = Email("bad").Check("jane@")
	assert.False(t, ok)

	ok, _ = Tag("valid_phone", "bad").Check("+1 (555) 123-4567")
	assert.True(t, ok)
	ok, _ = Tag("valid_phone", "bad").Check("555-CALL-NOW")
	assert.False(t, ok)
}

func TestMustBeTrue(t *testing.T) {
	yes, no := true, false
	var missing *bool

	ok, _ := MustBeTrue("confirm").Check(&yes)
	assert.True(t, ok)
	ok, _ = MustBeTrue("confirm").Check(&no)
	assert.False(t, ok)
	ok, _ = MustBeTrue("confirm").Check(missing)
	assert.False(t, ok)
	ok, _ = MustBeTrue("confirm").Check("true")
	assert.False(t, ok)
}

func TestDateRange(t *testing.T) {
	min := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	max := min.AddDate(0, 0, 90)
	rule := DateRange(min, max, "outside")

	ok, _ := rule.Check(day{t: min})
	assert.True(t, ok)
	ok, _ = rule.Check(day{t: max})
	assert.True(t, ok)
	ok, _ = rule.Check(day{t: min.AddDate(0, 0, -1)})
	assert.False(t, ok)
	ok, _ = rule.Check(max.AddDate(0, 0, 1))
	assert.False(t, ok)

	open := DateRange(time.Time{}, max, "outside")
	ok, _ = open.Check(day{t: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)})
	assert.True(t, ok)
}

func TestFileConstraint(t *testing.T) {
	rule := FileConstraint(2<<20, []string{"image/jpeg", "image/png"}, "too big", "bad type")
	var none *file

	ok, _ := rule.Check(none)
	assert.True(t, ok)
	ok, _ = rule.Check(file{size: 1024, mime: "image/PNG"})
	assert.True(t, ok)

	ok, reason := rule.Check(file{size: 2<<20 + 1, mime: "image/png"})
	assert.False(t, ok)
	assert.Equal(t, "too big", reason)

	ok, reason = rule.Check(file{size: 10, mime: "application/pdf"})
	assert.False(t, ok)
	assert.Equal(t, "bad type", reason)
}

func TestRun(t *testing.T) {
	t.Run("Should stop at the first failing rule", func(t *testing.T) {
		ok, reason := Run("", Required("first"), MinLength(3, "second"))
		assert.False(t, ok)
		assert.Equal(t, "first", reason)
	})

	t.Run("Should pass when every rule passes", func(t *testing.T) {
		ok, reason := Run("Backend", Required("first"), MinLength(3, "second"))
		assert.True(t, ok)
		assert.Empty(t, reason)
	})
}
