// Package views contains pure projections from one AnalyticsSummary into the
// shapes each presentation view renders. No I/O, deterministic: the views
// never re-fetch, they all derive from the same summary.
package views

import "github.com/nvarad/finsight/internal/api"

// Metric enumerates the keys the trend view can plot.
type Metric string

const (
	MetricRevenue          Metric = "revenue"
	MetricTotalAssets      Metric = "total_assets"
	MetricTotalLiabilities Metric = "total_liabilities"
	MetricTotalEquity      Metric = "total_equity"
	MetricCurrentAssets    Metric = "current_assets"
	MetricWorkingCapital   Metric = "working_capital"
)

// Metrics lists the trend metrics in display order.
func Metrics() []Metric {
	return []Metric{
		MetricRevenue,
		MetricTotalAssets,
		MetricTotalLiabilities,
		MetricTotalEquity,
		MetricCurrentAssets,
		MetricWorkingCapital,
	}
}

// Title returns the metric's display name.
func (m Metric) Title() string {
	switch m {
	case MetricRevenue:
		return "Revenue"
	case MetricTotalAssets:
		return "Total Assets"
	case MetricTotalLiabilities:
		return "Total Liabilities"
	case MetricTotalEquity:
		return "Total Equity"
	case MetricCurrentAssets:
		return "Current Assets"
	case MetricWorkingCapital:
		return "Working Capital"
	default:
		return string(m)
	}
}

// Point is one (period, value) pair of a series.
type Point struct {
	Period string
	Value  float64
}

// Trend projects the chosen metric across the selected periods, period
// ascending. Periods missing the metric are omitted rather than zeroed.
func Trend(s *api.AnalyticsSummary, metric Metric) []Point {
	if s == nil {
		return nil
	}
	out := make([]Point, 0, len(s.Analytics))
	for _, row := range s.Analytics {
		if v := metricValue(row, metric); v != nil {
			out = append(out, Point{Period: row.Period, Value: *v})
		}
	}
	return out
}

// ComparisonRow carries the parallel series of the comparison chart.
type ComparisonRow struct {
	Period           string
	Revenue          *float64
	TotalAssets      *float64
	TotalLiabilities *float64
}

// Comparison projects revenue/assets/liabilities per period.
func Comparison(s *api.AnalyticsSummary) []ComparisonRow {
	if s == nil {
		return nil
	}
	out := make([]ComparisonRow, len(s.Analytics))
	for i, row := range s.Analytics {
		out[i] = ComparisonRow{
			Period:           row.Period,
			Revenue:          row.Revenue,
			TotalAssets:      row.TotalAssets,
			TotalLiabilities: row.TotalLiabilities,
		}
	}
	return out
}

// Slice is one piece of the composition breakdown. Share is a percentage of
// the assets+liabilities+equity sum; a zero sum yields 0 for every slice.
type Slice struct {
	Name  string
	Value float64
	Share float64
}

// Composition projects the latest period into the three-slice breakdown.
// It returns ("", nil) when no period is available.
func Composition(s *api.AnalyticsSummary) (period string, slices []Slice) {
	if s == nil || len(s.Analytics) == 0 {
		return "", nil
	}
	latest := s.Analytics[len(s.Analytics)-1]
	slices = []Slice{
		{Name: "Assets", Value: deref(latest.TotalAssets)},
		{Name: "Liabilities", Value: deref(latest.TotalLiabilities)},
		{Name: "Equity", Value: deref(latest.TotalEquity)},
	}
	total := 0.0
	for _, sl := range slices {
		total += sl.Value
	}
	if total != 0 {
		for i := range slices {
			slices[i].Share = slices[i].Value / total * 100
		}
	}
	return latest.Period, slices
}

// RatioRow is one line of the ratio table.
type RatioRow struct {
	Period             string
	CurrentRatio       *float64
	DebtToEquity       *float64
	ROE                *float64
	AssetTurnover      *float64
	CurrentRatioStatus api.Status
	DebtToEquityStatus api.Status
}

// Ratios projects the per-period ratio table with status tags.
func Ratios(s *api.AnalyticsSummary) []RatioRow {
	if s == nil {
		return nil
	}
	out := make([]RatioRow, len(s.Analytics))
	for i, row := range s.Analytics {
		out[i] = RatioRow{
			Period:             row.Period,
			CurrentRatio:       row.CurrentRatio,
			DebtToEquity:       row.DebtToEquity,
			ROE:                row.ROE,
			AssetTurnover:      row.AssetTurnover,
			CurrentRatioStatus: row.CurrentRatioStatus,
			DebtToEquityStatus: row.DebtToEquityStatus,
		}
	}
	return out
}

// GrowthRow is one period's growth deltas; nil for the first period of the
// selected subsequence.
type GrowthRow struct {
	Period  string
	Assets  *float64
	Revenue *float64
}

// GrowthView bundles the per-period deltas with the CAGR scalars.
type GrowthView struct {
	Rows        []GrowthRow
	RevenueCAGR *float64
	AssetsCAGR  *float64
}

// GrowthSeries projects period growth plus CAGR from the KPIs when present.
func GrowthSeries(s *api.AnalyticsSummary) GrowthView {
	if s == nil {
		return GrowthView{}
	}
	rows := make([]GrowthRow, len(s.Analytics))
	for i, row := range s.Analytics {
		rows[i] = GrowthRow{
			Period:  row.Period,
			Assets:  row.Growth.Assets,
			Revenue: row.Growth.Revenue,
		}
	}
	return GrowthView{
		Rows:        rows,
		RevenueCAGR: s.KPIs.RevenueCAGR,
		AssetsCAGR:  s.KPIs.TotalAssetsCAGR,
	}
}

// CashFlowRow is one period's cash-flow figures.
type CashFlowRow struct {
	Period    string
	Operating *float64
	Investing *float64
	Financing *float64
	Net       *float64
}

// CashFlowAvailable reports whether the cash-flow view may be offered at
// all: at least one period must carry an operating or net figure. When it
// is false the view is unavailable, not merely empty.
func CashFlowAvailable(s *api.AnalyticsSummary) bool {
	if s == nil {
		return false
	}
	for _, row := range s.Analytics {
		if row.OperatingCashFlow != nil || row.NetCashFlow != nil {
			return true
		}
	}
	return false
}

// CashFlow projects the per-period cash-flow series.
func CashFlow(s *api.AnalyticsSummary) []CashFlowRow {
	if s == nil {
		return nil
	}
	out := make([]CashFlowRow, len(s.Analytics))
	for i, row := range s.Analytics {
		out[i] = CashFlowRow{
			Period:    row.Period,
			Operating: row.OperatingCashFlow,
			Investing: row.InvestingCashFlow,
			Financing: row.FinancingCashFlow,
			Net:       row.NetCashFlow,
		}
	}
	return out
}

func metricValue(row api.PeriodAnalytics, m Metric) *float64 {
	switch m {
	case MetricRevenue:
		return row.Revenue
	case MetricTotalAssets:
		return row.TotalAssets
	case MetricTotalLiabilities:
		return row.TotalLiabilities
	case MetricTotalEquity:
		return row.TotalEquity
	case MetricCurrentAssets:
		return row.CurrentAssets
	case MetricWorkingCapital:
		return row.WorkingCapital
	default:
		return nil
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
