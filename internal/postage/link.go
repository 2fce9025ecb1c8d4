// Package postage builds convenience links to the USPS Click-N-Ship postage
// page. The link is best-effort string construction only; nothing is
// validated against the postal service.
package postage

import (
	"strings"

	"github.com/tartampluch/birthday-cards/internal/config"
)

// BuildLink returns the postage URL for a mailing address, escaping only the
// characters the target page expects escaped (spaces and commas).
func BuildLink(address string) string {
	escaped := strings.NewReplacer(
		config.CharSpace, config.EscapeSpace,
		config.CharComma, config.EscapeComma,
	).Replace(address)

	return config.PostageBaseURL + "?" + config.PostageQueryParam + "=" + escaped
}
