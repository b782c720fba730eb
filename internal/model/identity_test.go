package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"simple", "Ergo Desk Riser", "ergo-desk-riser"},
		{"collapses runs", "ultra --  wide   monitor", "ultra-wide-monitor"},
		{"strips quotes", `Chef's "Best" Knife`, "chefs-best-knife"},
		{"trims edge hyphens", "  ...travel pillow!  ", "travel-pillow"},
		{"folds diacritics", "Café Crème Frother", "cafe-creme-frother"},
		{"url input", "https://example.com/dp/B0TEST", "https-example-com-dp-b0test"},
		{"empty", "", ""},
		{"only symbols", "!!! ***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Slugify(tt.input))
		})
	}
}

func TestSlugify_CapsLength(t *testing.T) {
	long := strings.Repeat("verylongword-", 20)
	got := Slugify(long)
	assert.LessOrEqual(t, len(got), 80)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestDeriveIdentity_PrefersASIN(t *testing.T) {
	c := RawCandidate{
		ASIN:          "  B0ABCD1234 ",
		Name:          "Ergo Desk Riser",
		BaseAmazonURL: "https://example.com/dp/B0ABCD1234",
	}
	assert.Equal(t, "asin-b0abcd1234", DeriveIdentity(c))
}

func TestDeriveIdentity_FallsBackToSlugs(t *testing.T) {
	c := RawCandidate{
		Name:          "Ergo Desk Riser",
		BaseAmazonURL: "https://example.com/x",
	}
	assert.Equal(t, "cand-ergo-desk-riser-https-example-com-x", DeriveIdentity(c))
}

func TestDeriveIdentity_Idempotent(t *testing.T) {
	candidates := []RawCandidate{
		{ASIN: "B0XYZ", Name: "Thing"},
		{Name: "Ergo Desk Riser", BaseAmazonURL: "https://example.com/x"},
		{Name: "", BaseAmazonURL: ""},
	}
	for _, c := range candidates {
		assert.Equal(t, DeriveIdentity(c), DeriveIdentity(c))
	}
}

func TestDeriveIdentity_CapsLength(t *testing.T) {
	c := RawCandidate{
		Name:          strings.Repeat("long product name ", 10),
		BaseAmazonURL: "https://example.com/" + strings.Repeat("segment/", 15),
	}
	id := DeriveIdentity(c)
	assert.LessOrEqual(t, len(id), 80)
	assert.True(t, strings.HasPrefix(id, "cand-"))
}

func TestDeriveIdentity_NeverFails(t *testing.T) {
	// Runs before validation, so fully empty input must still yield something.
	id := DeriveIdentity(RawCandidate{})
	assert.Equal(t, "cand--", id)
}
