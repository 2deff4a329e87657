package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) handleChatKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.state = viewDashboard
		a.chatInput.Blur()
		return a, nil
	case "enter":
		query := strings.TrimSpace(a.chatInput.Value())
		if query == "" || a.chatWaiting || a.active == nil {
			return a, nil
		}
		a.chatInput.SetValue("")
		a.chatWaiting = true
		return a, a.sendChatCmd(a.active.ID, query, a.store.Selected())
	case "pgup", "pgdown":
		var cmd tea.Cmd
		a.chatView, cmd = a.chatView.Update(m)
		return a, cmd
	}
	var cmd tea.Cmd
	a.chatInput, cmd = a.chatInput.Update(m)
	return a, cmd
}

func (a *App) resizeChat() {
	w, h := a.width, a.height-6
	if w <= 0 {
		w = 80
	}
	if h < 5 {
		h = 5
	}
	if !a.chatReady {
		a.chatView = viewport.New(w, h)
		a.chatReady = true
	} else {
		a.chatView.Width = w
		a.chatView.Height = h
	}
	a.chatInput.Width = w - 4
	a.refreshChatView()
}

// refreshChatView rebuilds the transcript. Responses come back as markdown
// and render through glamour; queries stay plain.
func (a *App) refreshChatView() {
	if !a.chatReady {
		return
	}
	md := newMarkdownRenderer(a.chatView.Width)
	var b strings.Builder
	for _, msg := range a.history {
		b.WriteString(titleStyle.Render("You") + " " + msg.Query + "\n")
		rendered := msg.Response
		if md != nil {
			if out, err := md.Render(msg.Response); err == nil {
				rendered = out
			}
		}
		b.WriteString(rendered)
		b.WriteString("\n")
	}
	if a.chatWaiting {
		b.WriteString(dimStyle.Render("thinking...") + "\n")
	}
	a.chatView.SetContent(b.String())
	a.chatView.GotoBottom()
}

func (a *App) renderChat() string {
	name := ""
	if a.active != nil {
		name = a.active.Name + " - "
	}
	selected, total := a.store.Counts()
	scope := "  (no periods)"
	if total > 0 {
		scope = fmt.Sprintf("  (asking about %d of %d periods)", selected, total)
	}
	title := titleStyle.Render(name+"Chat") + dimStyle.Render(scope)
	body := a.chatView.View()
	if !a.chatReady {
		body = dimStyle.Render("(resizing...)")
	}
	out := title + "\n" + body + "\n" + a.chatInput.View() + "\n[enter] Send  [esc] Back  [ctrl+c] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
