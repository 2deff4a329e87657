package api

import (
	"strconv"
	"time"
)

// Company is one analyzable entity; subsidiaries reference their parent.
type Company struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ParentCompany *int64 `json:"parent_company"`
}

// BalanceSheetRef identifies one uploaded balance-sheet period. Quarter is
// "1".."4" or empty for annual sheets. Immutable once fetched.
type BalanceSheetRef struct {
	ID               int64     `json:"id"`
	Year             int       `json:"year"`
	Quarter          string    `json:"quarter"`
	UploadedAt       time.Time `json:"uploaded_at"`
	ExtractionStatus string    `json:"extraction_status"`
}

// Label renders the period as shown in the selector, e.g. "2023 Q2".
func (r BalanceSheetRef) Label() string {
	if r.Quarter == "" {
		return strconv.Itoa(r.Year)
	}
	return strconv.Itoa(r.Year) + " Q" + r.Quarter
}

// Growth holds period-over-period deltas; keys absent for the first period.
type Growth struct {
	Assets  *float64 `json:"assets,omitempty"`
	Revenue *float64 `json:"revenue,omitempty"`
	Equity  *float64 `json:"equity,omitempty"`
}

// PeriodAnalytics is one derived row of the analytics summary. Every metric
// is optional on the wire; pointers keep "missing" distinct from zero.
type PeriodAnalytics struct {
	ID                 int64    `json:"id"`
	Year               int      `json:"year"`
	Quarter            string   `json:"quarter"`
	Period             string   `json:"period"`
	TotalAssets        *float64 `json:"total_assets"`
	CurrentAssets      *float64 `json:"current_assets"`
	NonCurrentAssets   *float64 `json:"non_current_assets"`
	TotalLiabilities   *float64 `json:"total_liabilities"`
	CurrentLiabilities *float64 `json:"current_liabilities"`
	TotalEquity        *float64 `json:"total_equity"`
	Revenue            *float64 `json:"revenue"`
	OperatingCashFlow  *float64 `json:"operating_cash_flow"`
	InvestingCashFlow  *float64 `json:"investing_cash_flow"`
	FinancingCashFlow  *float64 `json:"financing_cash_flow"`
	NetCashFlow        *float64 `json:"net_cash_flow"`
	CurrentRatio       *float64 `json:"current_ratio"`
	DebtToEquity       *float64 `json:"debt_to_equity"`
	ROE                *float64 `json:"roe"`
	WorkingCapital     *float64 `json:"working_capital"`
	AssetTurnover      *float64 `json:"asset_turnover"`
	Growth             Growth   `json:"growth"`
	CurrentRatioStatus Status   `json:"current_ratio_status"`
	DebtToEquityStatus Status   `json:"debt_to_equity_status"`
}

// Status is the qualitative tag the service attaches to a ratio.
type Status string

const (
	StatusGood      Status = "good"
	StatusAttention Status = "attention"
	StatusBad       Status = "bad"
	StatusModerate  Status = "moderate"
	StatusHigh      Status = "high"
	StatusUnknown   Status = "unknown"
)

// KPISummary aggregates scalars across the selected periods.
type KPISummary struct {
	TotalAssets     *float64 `json:"total_assets"`
	Revenue         *float64 `json:"revenue"`
	CurrentRatio    *float64 `json:"current_ratio"`
	DebtToEquity    *float64 `json:"debt_to_equity"`
	WorkingCapital  *float64 `json:"working_capital"`
	ROE             *float64 `json:"roe"`
	AssetTurnover   *float64 `json:"asset_turnover"`
	AssetsGrowth    *float64 `json:"assets_growth"`
	RevenueGrowth   *float64 `json:"revenue_growth"`
	TotalAssetsCAGR *float64 `json:"total_assets_cagr"`
	RevenueCAGR     *float64 `json:"revenue_cagr"`
}

// AnalyticsSummary is the atomic result for one (company, selection) pair.
// Analytics rows are ordered by period ascending.
type AnalyticsSummary struct {
	Analytics    []PeriodAnalytics `json:"analytics"`
	KPIs         KPISummary        `json:"kpis"`
	PeriodsCount int               `json:"periods_count"`
}

// ChatMessage is one exchanged query/response pair.
type ChatMessage struct {
	ID        int64     `json:"id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
