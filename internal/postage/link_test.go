package postage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/birthday-cards/internal/postage"
)

// TestBuildLink verifies spaces and commas are escaped and nothing else is
// touched; the target page expects exactly this shape.
func TestBuildLink(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		expected string
	}{
		{
			"SpacesAndCommas",
			"123 Main St, Springfield, IL 62701",
			"https://cns.usps.com/mailpieces?destination=123%20Main%20St%2C%20Springfield%2C%20IL%2062701",
		},
		{
			"NoSpecialChars",
			"Somewhere",
			"https://cns.usps.com/mailpieces?destination=Somewhere",
		},
		{
			"Empty",
			"",
			"https://cns.usps.com/mailpieces?destination=",
		},
		{
			"OtherCharsUntouched",
			"5 Baker St #2/B",
			"https://cns.usps.com/mailpieces?destination=5%20Baker%20St%20#2/B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, postage.BuildLink(tt.address))
		})
	}
}
