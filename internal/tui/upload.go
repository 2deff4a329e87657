package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldPath = iota
	fieldYear
	fieldQuarter
	fieldCount
)

func (a *App) handleUploadKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	}
	switch m.Type {
	case tea.KeyEsc:
		a.state = viewDashboard
		a.status = ""
	case tea.KeyTab, tea.KeyDown:
		a.uploadField = (a.uploadField + 1) % fieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		a.uploadField = (a.uploadField + fieldCount - 1) % fieldCount
	case tea.KeyEnter:
		if a.uploading {
			return a, nil
		}
		path := strings.TrimSpace(a.uploadPath)
		if path == "" {
			a.status = "enter a PDF path"
			return a, nil
		}
		year, ok := parseYear(a.uploadYear)
		if !ok {
			a.status = "enter a valid year"
			return a, nil
		}
		quarter := strings.TrimSpace(a.uploadQuarter)
		if quarter != "" && (len(quarter) != 1 || quarter < "1" || quarter > "4") {
			a.status = "quarter must be 1-4 or empty for annual"
			return a, nil
		}
		if a.active == nil {
			a.status = "pick a company first"
			return a, nil
		}
		a.uploading = true
		a.status = "uploading..."
		return a, a.uploadCmd(a.active.ID, year, quarter, path)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		f := a.uploadFieldRef()
		if len(*f) > 0 {
			*f = (*f)[:len(*f)-1]
		}
	case tea.KeySpace:
		if a.uploadField == fieldPath {
			a.uploadPath += " "
		}
	case tea.KeyRunes:
		*a.uploadFieldRef() += string(m.Runes)
	}
	return a, nil
}

func (a *App) uploadFieldRef() *string {
	switch a.uploadField {
	case fieldYear:
		return &a.uploadYear
	case fieldQuarter:
		return &a.uploadQuarter
	default:
		return &a.uploadPath
	}
}

func (a *App) renderUpload() string {
	name := ""
	if a.active != nil {
		name = a.active.Name + " - "
	}
	title := titleStyle.Render(name + "Upload Balance Sheet")

	field := func(idx int, label, value string) string {
		marker := " "
		if a.uploadField == idx {
			marker = "▶"
		}
		return fmt.Sprintf("%s %-12s %s", marker, label, value)
	}
	out := title + "\n" +
		field(fieldPath, "PDF path:", a.uploadPath) + "\n" +
		field(fieldYear, "Year:", a.uploadYear) + "\n" +
		field(fieldQuarter, "Quarter:", a.uploadQuarter+dimStyle.Render(" (1-4, empty = annual)")) + "\n" +
		"\n[tab] Next field  [enter] Upload  [esc] Back  [ctrl+c] Quit"
	if a.uploading {
		out += "\n" + dimStyle.Render("uploading and extracting...")
	}
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
