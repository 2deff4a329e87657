package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvarad/finsight/internal/api"
	"github.com/nvarad/finsight/internal/views"
)

func (a *App) renderDashboard() string {
	if a.active == nil {
		return titleStyle.Render("Finsight") + "\n" + dimStyle.Render("no company selected, press [c]")
	}

	title := titleStyle.Render(a.active.Name + " - Balance Sheet Analytics")

	var body string
	selected, _ := a.store.Counts()
	summary := a.agg.Summary()
	switch {
	case a.catalog.Loading() && len(a.catalog.Refs()) == 0:
		body = dimStyle.Render("loading periods...")
	case a.catalog.Err() != nil:
		body = badStyle.Render("could not load periods: " + a.catalog.Err().Error())
	case len(a.catalog.Refs()) == 0:
		body = dimStyle.Render("no balance sheets uploaded yet, press [u] to upload")
	case selected == 0:
		body = dimStyle.Render("no periods selected, pick some in the selector ([s], then space)")
	case summary == nil && a.agg.Loading():
		body = dimStyle.Render("computing analytics...")
	case summary == nil && a.agg.Err() != nil:
		body = badStyle.Render("analytics failed: " + a.agg.Err().Error())
	default:
		body = a.renderTab(summary)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, a.renderSelector(), "  ", body)

	out := title + "\n" + a.renderKPIBar(summary) + "\n\n" + main + "\n\n" + a.renderTabsFooter()
	if a.agg.Loading() && summary != nil {
		out += "\n" + dimStyle.Render("refreshing...")
	}
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderKPIBar(s *api.AnalyticsSummary) string {
	if s == nil {
		return dimStyle.Render("KPIs pending")
	}
	k := s.KPIs
	assets := "Assets " + a.fmtr.Currency(k.TotalAssets, 2)
	if k.AssetsGrowth != nil {
		assets += " " + growthCell(a, k.AssetsGrowth)
	}
	revenue := "Revenue " + a.fmtr.Currency(k.Revenue, 2)
	if k.RevenueGrowth != nil {
		revenue += " " + growthCell(a, k.RevenueGrowth)
	}
	parts := []string{
		assets,
		revenue,
		"Working Cap " + a.fmtr.Currency(k.WorkingCapital, 2),
		"Current Ratio " + a.fmtr.Ratio(k.CurrentRatio, 2),
		"D/E " + a.fmtr.Ratio(k.DebtToEquity, 2),
	}
	if k.ROE != nil {
		parts = append(parts, "ROE "+a.fmtr.Percentage(k.ROE, 2))
	}
	if k.AssetTurnover != nil {
		parts = append(parts, "Turnover "+a.fmtr.Ratio(k.AssetTurnover, 2))
	}
	if k.RevenueCAGR != nil {
		parts = append(parts, "Rev CAGR "+a.fmtr.Percentage(k.RevenueCAGR, 2))
	}
	if k.TotalAssetsCAGR != nil {
		parts = append(parts, "Assets CAGR "+a.fmtr.Percentage(k.TotalAssetsCAGR, 2))
	}
	return strings.Join(parts, "  |  ") + dimStyle.Render(fmt.Sprintf("  (%d periods)", s.PeriodsCount))
}

func (a *App) renderSelector() string {
	refs := a.catalog.Refs()
	selected, total := a.store.Counts()
	header := fmt.Sprintf("Periods %d/%d", selected, total)
	if a.selFocused {
		header = titleStyle.Render(header)
	} else {
		header = dimStyle.Render(header)
	}
	lines := []string{header}
	for i, r := range refs {
		marker := " "
		if a.selFocused && i == a.selCursor {
			marker = "▶"
		}
		box := "[ ]"
		if a.store.IsSelected(r.ID) {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", marker, box, r.Label())
		if r.ExtractionStatus != "" && r.ExtractionStatus != "completed" {
			line += dimStyle.Render(" (" + r.ExtractionStatus + ")")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderTab(s *api.AnalyticsSummary) string {
	switch a.dashTab {
	case tabRatios:
		return a.renderRatios(s)
	case tabGrowth:
		return a.renderGrowth(s)
	case tabCashFlow:
		return a.renderCashFlow(s)
	default:
		return a.renderOverview(s)
	}
}

func (a *App) renderOverview(s *api.AnalyticsSummary) string {
	chartW := a.width - 30
	if chartW < 40 {
		chartW = 40
	}

	trend := views.Trend(s, a.metric)
	points := make([]chartPoint, len(trend))
	for i, p := range trend {
		points[i] = chartPoint{Label: p.Period, Value: p.Value, Text: a.fmtr.Currency(p.Value, 2)}
	}
	out := barChart(a.metric.Title()+" Trend  [m] change metric", points, chartW)

	if comparison := views.Comparison(s); len(comparison) > 0 {
		var comp []chartPoint
		for _, row := range comparison {
			if row.Revenue != nil {
				comp = append(comp, chartPoint{Label: row.Period + " Rev", Value: *row.Revenue, Text: a.fmtr.Currency(row.Revenue, 2)})
			}
			if row.TotalAssets != nil {
				comp = append(comp, chartPoint{Label: row.Period + " Ast", Value: *row.TotalAssets, Text: a.fmtr.Currency(row.TotalAssets, 2)})
			}
			if row.TotalLiabilities != nil {
				comp = append(comp, chartPoint{Label: row.Period + " Lia", Value: *row.TotalLiabilities, Text: a.fmtr.Currency(row.TotalLiabilities, 2)})
			}
		}
		if len(comp) > 0 {
			out += "\n\n" + barChart("Financial Comparison", comp, chartW)
		}
	}

	period, slices := views.Composition(s)
	if len(slices) > 0 {
		comp := make([]chartPoint, len(slices))
		for i, sl := range slices {
			comp[i] = chartPoint{
				Label: sl.Name,
				Value: sl.Value,
				Text:  fmt.Sprintf("%s (%.1f%%)", a.fmtr.Currency(sl.Value, 2), sl.Share),
			}
		}
		out += "\n\n" + barChart("Composition "+period, comp, chartW)
	}
	return out
}

func (a *App) renderRatios(s *api.AnalyticsSummary) string {
	rows := views.Ratios(s)
	out := fmt.Sprintf("%-10s %14s %14s %10s %14s\n", "Period", "Current Ratio", "Debt/Equity", "ROE", "Asset Turnover")
	for _, r := range rows {
		out += fmt.Sprintf("%-10s %14s %14s %10s %14s\n",
			r.Period,
			statusStyle(r.CurrentRatioStatus).Render(a.fmtr.Ratio(r.CurrentRatio, 2)),
			statusStyle(r.DebtToEquityStatus).Render(a.fmtr.Ratio(r.DebtToEquity, 2)),
			a.fmtr.Percentage(r.ROE, 2),
			a.fmtr.Ratio(r.AssetTurnover, 2))
	}
	return strings.TrimRight(out, "\n")
}

func (a *App) renderGrowth(s *api.AnalyticsSummary) string {
	gv := views.GrowthSeries(s)
	out := fmt.Sprintf("%-10s %14s %14s\n", "Period", "Assets", "Revenue")
	for _, r := range gv.Rows {
		out += fmt.Sprintf("%-10s %14s %14s\n", r.Period, growthCell(a, r.Assets), growthCell(a, r.Revenue))
	}
	out += "\nCAGR: assets " + a.fmtr.Percentage(gv.AssetsCAGR, 2) + "  revenue " + a.fmtr.Percentage(gv.RevenueCAGR, 2)
	return out
}

func (a *App) renderCashFlow(s *api.AnalyticsSummary) string {
	rows := views.CashFlow(s)
	out := fmt.Sprintf("%-10s %14s %14s %14s %14s\n", "Period", "Operating", "Investing", "Financing", "Net")
	for _, r := range rows {
		out += fmt.Sprintf("%-10s %14s %14s %14s %14s\n",
			r.Period,
			a.fmtr.Currency(r.Operating, 2),
			a.fmtr.Currency(r.Investing, 2),
			a.fmtr.Currency(r.Financing, 2),
			a.fmtr.Currency(r.Net, 2))
	}
	return strings.TrimRight(out, "\n")
}

func (a *App) renderTabsFooter() string {
	tabs := "[o] Overview  [r] Ratios  [g] Growth"
	if views.CashFlowAvailable(a.agg.Summary()) {
		tabs += "  [f] Cash Flow"
	}
	return tabs + "  |  [s] Selector  [A] All  [D] None  [h] Chat  [u] Upload  [c] Companies  [q] Quit"
}

func growthCell(a *App, v *float64) string {
	if v == nil {
		return dimStyle.Render("-")
	}
	s := a.fmtr.Percentage(v, 2)
	if *v >= 0 {
		return goodStyle.Render(s)
	}
	return badStyle.Render(s)
}

func statusStyle(s api.Status) lipgloss.Style {
	switch s {
	case api.StatusGood:
		return goodStyle
	case api.StatusAttention, api.StatusModerate:
		return warnStyle
	case api.StatusBad, api.StatusHigh:
		return badStyle
	default:
		return dimStyle
	}
}
