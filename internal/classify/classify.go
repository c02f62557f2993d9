// Package classify validates and normalizes raw lookup input into a typed
// query. Classification is a pure function: it either yields a Query of one
// of the two accepted kinds or fails with ErrInvalidFormat, never both.
package classify

import (
	"errors"
	"regexp"
	"strings"

	"github.com/simdex/go-lookup-gateway/internal/domain"
)

// ErrInvalidFormat is returned when the input matches neither accepted
// shape. The message doubles as the user-facing hint.
var ErrInvalidFormat = errors.New(
	"invalid format: expected a mobile number (92 followed by 9-12 digits) or a 13-digit national ID")

var (
	// mobileRE matches country code 92 plus 9-12 further digits, nothing else.
	mobileRE = regexp.MustCompile(`^92\d{9,12}$`)
	// nationalIDRE matches exactly 13 digits, no separators.
	nationalIDRE = regexp.MustCompile(`^\d{13}$`)
)

// Classify trims surrounding whitespace and matches the value against the
// mobile pattern first, then the national-ID pattern. Any other input fails
// closed with ErrInvalidFormat.
func Classify(raw string) (domain.Query, error) {
	v := strings.TrimSpace(raw)
	switch {
	case mobileRE.MatchString(v):
		return domain.Query{Kind: domain.KindMobile, Value: v}, nil
	case nationalIDRE.MatchString(v):
		return domain.Query{Kind: domain.KindNationalID, Value: v}, nil
	default:
		return domain.Query{}, ErrInvalidFormat
	}
}
