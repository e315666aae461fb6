package treasury

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuval-krn/yieldcurve/internal/domain"
)

// sampleFeed mirrors the namespaced Atom+OData shape of the real feed.
const sampleFeed = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>
<feed xmlns="http://www.w3.org/2005/Atom"
      xmlns:d="http://schemas.microsoft.com/ado/2007/08/dataservices"
      xmlns:m="http://schemas.microsoft.com/ado/2007/08/dataservices/metadata">
  <title type="text">DailyTreasuryYieldCurveRateData</title>
  <entry>
    <content type="application/xml">
      <m:properties>
        <d:Id m:type="Edm.Int32">9921</d:Id>
        <d:NEW_DATE m:type="Edm.DateTime">2025-09-17T00:00:00</d:NEW_DATE>
        <d:BC_1MONTH m:type="Edm.Double">4.18</d:BC_1MONTH>
        <d:BC_10YEAR m:type="Edm.Double">4.03</d:BC_10YEAR>
        <d:BC_30YEAR m:type="Edm.Double" m:null="true"></d:BC_30YEAR>
      </m:properties>
    </content>
  </entry>
  <entry>
    <content type="application/xml">
      <m:properties>
        <d:NEW_DATE m:type="Edm.DateTime">2025-09-18T00:00:00</d:NEW_DATE>
        <d:BC_1MONTH m:type="Edm.Double">4.20</d:BC_1MONTH>
        <d:BC_3MONTH m:type="Edm.Double">not-a-number</d:BC_3MONTH>
      </m:properties>
    </content>
  </entry>
</feed>`

func TestParse(t *testing.T) {
	entries, err := Parse([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "2025-09-17T00:00:00", first.Date)
	require.Len(t, first.Fields, 3)

	assert.Equal(t, "BC_1MONTH", first.Fields[0].Name)
	require.NotNil(t, first.Fields[0].Value)
	assert.Equal(t, 4.18, *first.Fields[0].Value)

	assert.Equal(t, "BC_10YEAR", first.Fields[1].Name)
	require.NotNil(t, first.Fields[1].Value)
	assert.Equal(t, 4.03, *first.Fields[1].Value)

	// Empty element text becomes a nil value, not an error.
	assert.Equal(t, "BC_30YEAR", first.Fields[2].Name)
	assert.Nil(t, first.Fields[2].Value)

	second := entries[1]
	assert.Equal(t, "2025-09-18T00:00:00", second.Date)
	require.Len(t, second.Fields, 2)
	assert.Nil(t, second.Fields[1].Value, "non-numeric text should parse to nil")
}

func TestParseSkipsEntriesWithoutDate(t *testing.T) {
	const feed = `<feed xmlns="http://www.w3.org/2005/Atom"
      xmlns:d="http://schemas.microsoft.com/ado/2007/08/dataservices"
      xmlns:m="http://schemas.microsoft.com/ado/2007/08/dataservices/metadata">
  <entry>
    <content><m:properties>
      <d:BC_1MONTH>4.18</d:BC_1MONTH>
    </m:properties></content>
  </entry>
</feed>`

	entries, err := Parse([]byte(feed))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseIgnoresNonRateFields(t *testing.T) {
	const feed = `<feed xmlns="http://www.w3.org/2005/Atom"
      xmlns:d="http://schemas.microsoft.com/ado/2007/08/dataservices"
      xmlns:m="http://schemas.microsoft.com/ado/2007/08/dataservices/metadata">
  <entry>
    <content><m:properties>
      <d:Id>17</d:Id>
      <d:NEW_DATE>2025-01-02T00:00:00</d:NEW_DATE>
      <d:QUOTE_DATE>2025-01-02T00:00:00</d:QUOTE_DATE>
      <d:BC_2YEAR>4.25</d:BC_2YEAR>
    </m:properties></content>
  </entry>
</feed>`

	entries, err := Parse([]byte(feed))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Fields, 1)
	assert.Equal(t, "BC_2YEAR", entries[0].Fields[0].Name)
}

func TestParseMalformedDocument(t *testing.T) {
	_, err := Parse([]byte("this is not xml <<<"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedDocument))
}

func TestParseEmptyFeed(t *testing.T) {
	entries, err := Parse([]byte(`<feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
