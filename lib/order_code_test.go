package lib

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderCode(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-[A-Z0-9]{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateOrderCode("ORD")
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestGenerateBookingCode(t *testing.T) {
	now := time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)

	code, err := GenerateBookingCode("TFQ", now)
	require.NoError(t, err)
	assert.Regexp(t, `^TFQ-20250307-\d{4}$`, code)
}

func TestGenerateUniqueCodeStaysInRange(t *testing.T) {
	for _, upper := range []int{0, 1, 50, 999, 5000} {
		for i := 0; i < 100; i++ {
			n, err := GenerateUniqueCode(upper)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, MaxUniqueCode)
			if upper >= 1 && upper <= MaxUniqueCode {
				assert.LessOrEqual(t, n, upper)
			}
		}
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "netflix-premium-1-bulan", Slugify("Netflix Premium (1 Bulan)"))
	assert.Equal(t, "abc", Slugify("  --ABC--  "))
	assert.Equal(t, "", Slugify("!!!"))
	assert.Equal(t, "kopi-cafe-creme", Slugify("Kopi Café Crème"))
	assert.Equal(t, "urun-ozel", Slugify("Ürün Özel"))
}
