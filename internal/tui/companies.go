package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvarad/finsight/internal/api"
)

func (a *App) handleCompaniesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		if a.companyFilter != "" {
			a.companyFilter = ""
			a.companyCursor = 0
			return a, nil
		}
		if a.active != nil {
			a.state = viewDashboard
		}
		return a, nil
	}
	switch m.Type {
	case tea.KeyUp:
		if a.companyCursor > 0 {
			a.companyCursor--
		}
	case tea.KeyDown:
		if a.companyCursor < len(a.filteredCompanies())-1 {
			a.companyCursor++
		}
	case tea.KeyEnter:
		list := a.filteredCompanies()
		if a.companyCursor < len(list) {
			a.companyFilter = ""
			return a, a.setCompany(list[a.companyCursor])
		}
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.companyFilter) > 0 {
			a.companyFilter = a.companyFilter[:len(a.companyFilter)-1]
			a.companyCursor = 0
		}
	case tea.KeySpace:
		a.companyFilter += " "
		a.companyCursor = 0
	case tea.KeyRunes:
		a.companyFilter += string(m.Runes)
		a.companyCursor = 0
	}
	return a, nil
}

// filteredCompanies ranks by the typed filter: substring matches first, then
// near-misses by edit distance. An empty filter returns the full list.
func (a *App) filteredCompanies() []api.Company {
	filter := strings.ToLower(strings.TrimSpace(a.companyFilter))
	if filter == "" {
		return a.companies
	}
	type ranked struct {
		c    api.Company
		dist int
	}
	var out []ranked
	for _, c := range a.companies {
		name := strings.ToLower(c.Name)
		if strings.Contains(name, filter) {
			out = append(out, ranked{c: c, dist: 0})
			continue
		}
		if d := levenshtein.ComputeDistance(filter, name); d <= 3 {
			out = append(out, ranked{c: c, dist: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].dist < out[j].dist })
	list := make([]api.Company, len(out))
	for i, r := range out {
		list[i] = r.c
	}
	return list
}

func (a *App) renderCompanies() string {
	title := titleStyle.Render("Companies")
	out := title + "\n"
	if a.companyFilter != "" {
		out += "filter: " + a.companyFilter + "\n"
	}
	list := a.filteredCompanies()
	if len(a.companies) == 0 {
		out += dimStyle.Render("loading companies...") + "\n"
	} else if len(list) == 0 {
		out += dimStyle.Render("no match for \""+a.companyFilter+"\"") + "\n"
	}
	byID := make(map[int64]string, len(a.companies))
	for _, c := range a.companies {
		byID[c.ID] = c.Name
	}
	for i, c := range list {
		marker := " "
		if i == a.companyCursor {
			marker = "▶"
		}
		label := c.Name
		if c.ParentCompany != nil {
			if parent := byID[*c.ParentCompany]; parent != "" {
				label += dimStyle.Render(" (subsidiary of " + parent + ")")
			}
		}
		out += fmt.Sprintf("%s %s\n", marker, label)
	}
	out += "\ntype to filter  [enter] Open  [esc] Clear/Back  [ctrl+c] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
