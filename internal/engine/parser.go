package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/birthday-cards/internal/config"
)

// ParseContacts reads a plain-text contact list, one contact per non-blank
// line, comma-separated as "Name, Address, Birthdate".
//
// Lines yielding fewer than three trimmed fields are dropped and counted in
// the returned skipped total; no error is surfaced for them. Fields beyond
// the third are ignored. Input order is preserved.
//
// A read failure returns an empty slice and the error; no partial results.
func ParseContacts(r io.Reader) ([]ContactRecord, int, error) {
	var records []ContactRecord
	skipped := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, config.FieldSeparator)
		if len(parts) < config.MinContactFields {
			skipped++
			continue
		}

		records = append(records, ContactRecord{
			Name:      strings.TrimSpace(parts[0]),
			Address:   strings.TrimSpace(parts[1]),
			Birthdate: strings.TrimSpace(parts[2]),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrContactsRead, err)
	}

	if skipped > 0 {
		slog.Debug(config.MsgLineSkipped,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeySkipped, skipped)
	}

	return records, skipped, nil
}

// ParseVCards reads a vCard stream and converts each card into a
// ContactRecord. FN (or N as fallback) maps to Name, the first ADR to a
// single-line Address, and BDAY to a MM/DD/YYYY Birthdate. Cards without a
// usable BDAY are counted as skipped, matching the lossy line-parser contract.
func ParseVCards(r io.Reader) ([]ContactRecord, int, error) {
	var records []ContactRecord
	skipped := 0

	decoder := vcard.NewDecoder(r)
	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		address := ""
		if adr := card.Address(); adr != nil {
			address = formatAddress(adr)
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			skipped++
			continue
		}
		birthdate, ok := normalizeVCardDate(bday.Value)
		if !ok {
			skipped++
			continue
		}

		records = append(records, ContactRecord{
			Name:      name,
			Address:   address,
			Birthdate: birthdate,
		})
	}

	if skipped > 0 {
		slog.Debug(config.MsgLineSkipped,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeySkipped, skipped)
	}

	return records, skipped, nil
}

// formatAddress flattens a structured vCard address into one display line.
func formatAddress(adr *vcard.Address) string {
	parts := []string{adr.StreetAddress, adr.Locality, adr.Region, adr.PostalCode}
	var kept []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, config.FieldSeparator+config.CharSpace)
}

// normalizeVCardDate converts a vCard BDAY value (ISO forms) into the
// MM/DD/YYYY text the window filter expects.
func normalizeVCardDate(value string) (string, bool) {
	for _, layout := range []string{config.DateFormatFullDash, config.DateFormatFullBasic} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(config.DateLayoutInput), true
		}
	}
	return "", false
}
