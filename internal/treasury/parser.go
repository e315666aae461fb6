package treasury

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuval-krn/yieldcurve/internal/domain"
)

// ratePrefix marks the dynamically named rate fields inside each
// properties block, e.g. BC_1MONTH or BC_10YEAR.
const ratePrefix = "BC_"

// dateField is the per-entry observation date element.
const dateField = "NEW_DATE"

// RawField is one named rate field from a properties block. Value is
// nil when the element text was absent or non-numeric.
type RawField struct {
	Name  string
	Value *float64
}

// Entry is one per-date record from the feed: the observation date in
// source-provided string form plus the raw rate fields in document
// order.
type Entry struct {
	Date   string
	Fields []RawField
}

// The feed is an Atom document where each entry carries an OData-style
// properties block. Tags below match on local names, so the atom / m /
// d namespace prefixes used by the feed are irrelevant.
type feedXML struct {
	XMLName xml.Name   `xml:"feed"`
	Entries []entryXML `xml:"entry"`
}

type entryXML struct {
	Properties propertiesXML `xml:"content>properties"`
}

type propertiesXML struct {
	Fields []fieldXML `xml:",any"`
}

type fieldXML struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// Parse decodes the raw XML document into entries, preserving document
// order. It returns domain.ErrMalformedDocument only when the document
// itself cannot be parsed; individual malformed fields become nil
// values instead of aborting the run.
func Parse(doc []byte) ([]Entry, error) {
	var feed feedXML
	if err := xml.Unmarshal(doc, &feed); err != nil {
		return nil, fmt.Errorf("treasury: %w: %v", domain.ErrMalformedDocument, err)
	}

	entries := make([]Entry, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		var entry Entry
		for _, f := range e.Properties.Fields {
			name := f.XMLName.Local
			switch {
			case name == dateField:
				entry.Date = strings.TrimSpace(f.Value)
			case strings.HasPrefix(name, ratePrefix):
				entry.Fields = append(entry.Fields, RawField{
					Name:  name,
					Value: parseRate(f.Value),
				})
			}
		}
		// Entries without an observation date cannot be keyed; drop them
		// rather than storing points under an empty date.
		if entry.Date == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseRate converts element text to a float, returning nil for empty
// or non-numeric content.
func parseRate(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
