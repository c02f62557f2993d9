// Package extract parses upstream HTML into normalized records.
//
// Table lookup is a deliberate two-step policy: a table explicitly marked
// for API responses is preferred, otherwise the first table in the document
// is used. Extraction never fails on malformed HTML; any absence of the
// expected structure degrades to an empty result.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"github.com/simdex/go-lookup-gateway/internal/domain"
)

// markedTableSelector identifies a table the upstream tagged for API
// consumers. When absent, Extract falls back to the first table.
const markedTableSelector = "table.api-results"

// minCells is the number of leading cells a row must contribute; shorter
// rows are silently skipped.
const minCells = 4

var spaceRE = regexp.MustCompile(`\s+`)

// Extract returns zero or more records from the document, in the order the
// rows appear. The first four cells of each data row map positionally to
// mobile, name, national ID, address.
func Extract(html string) []domain.Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return []domain.Record{}
	}

	table := doc.Find(markedTableSelector).First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return []domain.Record{}
	}

	records := []domain.Record{}
	dataRows(table).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < minCells {
			return
		}
		records = append(records, domain.Record{
			Mobile:     cellText(cells.Eq(0)),
			Name:       cellText(cells.Eq(1)),
			NationalID: cellText(cells.Eq(2)),
			Address:    cellText(cells.Eq(3)),
		})
	})
	return records
}

// dataRows selects the rows to read. Tables with explicit header markup
// (thead or th cells) keep every row: header rows contribute no td cells
// and fall out of the minCells check. Tables without header markup have
// their first row treated as the header and skipped.
//
// The html5 parser wraps bare tr elements in an implicit tbody, so tbody
// presence cannot signal explicit separation; thead/th can.
func dataRows(table *goquery.Selection) *goquery.Selection {
	all := table.Find("tr")
	if table.Find("thead, th").Length() > 0 {
		return all
	}
	if all.Length() <= 1 {
		return all.Slice(0, 0)
	}
	return all.Slice(1, all.Length())
}

// cellText strips and collapses whitespace and applies NFC normalization so
// records compare stably regardless of how the upstream encoded them.
func cellText(s *goquery.Selection) string {
	t := strings.TrimSpace(s.Text())
	t = spaceRE.ReplaceAllString(t, " ")
	return norm.NFC.String(t)
}
