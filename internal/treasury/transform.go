package treasury

import "github.com/yuval-krn/yieldcurve/internal/domain"

// labelMap relabels source rate field codes to canonical maturity
// terms. Fields outside this map are dropped, including the *DISPLAY
// variants that share the BC_ prefix.
var labelMap = map[string]domain.Term{
	"BC_1MONTH":   "1m",
	"BC_1_5MONTH": "1.5m",
	"BC_2MONTH":   "2m",
	"BC_3MONTH":   "3m",
	"BC_4MONTH":   "4m",
	"BC_6MONTH":   "6m",
	"BC_1YEAR":    "1Y",
	"BC_2YEAR":    "2Y",
	"BC_3YEAR":    "3Y",
	"BC_5YEAR":    "5Y",
	"BC_7YEAR":    "7Y",
	"BC_10YEAR":   "10Y",
	"BC_20YEAR":   "20Y",
	"BC_30YEAR":   "30Y",
}

// TransformStats counts fields dropped during a transform pass.
type TransformStats struct {
	Null     int // fields with no usable numeric value
	Unmapped int // recognized prefix but no canonical label
}

// Transform relabels the raw fields of one entry into curve points for
// the given date. Null-valued and unmapped fields are dropped. Output
// keeps the input field order; canonical term ordering is applied at
// query time, not here.
func Transform(date string, fields []RawField) ([]domain.CurvePoint, TransformStats) {
	var stats TransformStats
	points := make([]domain.CurvePoint, 0, len(fields))
	for _, f := range fields {
		if f.Value == nil {
			stats.Null++
			continue
		}
		term, ok := labelMap[f.Name]
		if !ok {
			stats.Unmapped++
			continue
		}
		points = append(points, domain.CurvePoint{
			Date:  date,
			Term:  term,
			Yield: *f.Value,
		})
	}
	return points, stats
}
