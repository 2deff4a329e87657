package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nvarad/finsight/internal/analytics"
	"github.com/nvarad/finsight/internal/api"
	"github.com/nvarad/finsight/internal/catalog"
	"github.com/nvarad/finsight/internal/config"
	"github.com/nvarad/finsight/internal/format"
	"github.com/nvarad/finsight/internal/selection"
	"github.com/nvarad/finsight/internal/views"
)

// Backend is the slice of the API client the app depends on.
type Backend interface {
	Companies(ctx context.Context) ([]api.Company, error)
	BalanceSheets(ctx context.Context, companyID int64) ([]api.BalanceSheetRef, error)
	AnalyticsSummary(ctx context.Context, companyID int64, ids []int64) (*api.AnalyticsSummary, error)
	ChatHistory(ctx context.Context, companyID int64) ([]api.ChatMessage, error)
	SendChatQuery(ctx context.Context, companyID int64, query string, selectedIDs []int64) (api.ChatMessage, error)
	UploadBalanceSheet(ctx context.Context, companyID int64, year int, quarter, path string) (api.BalanceSheetRef, error)
}

// App ties together views.
type App struct {
	ctx     context.Context
	backend Backend
	cfg     config.Config
	log     *zap.Logger
	fmtr    format.Formatter

	catalog *catalog.Catalog
	store   *selection.Store
	agg     *analytics.Aggregator

	state   appState
	dashTab dashTab
	modal   modalState
	status  string
	width   int
	height  int

	// companies
	companies     []api.Company
	companyCursor int
	companyFilter string
	active        *api.Company

	// dashboard
	metric       views.Metric
	metricCursor int
	selCursor    int
	selFocused   bool

	// chat
	chatInput   textinput.Model
	chatView    viewport.Model
	chatReady   bool
	history     []api.ChatMessage
	chatWaiting bool

	// upload
	uploadPath    string
	uploadYear    string
	uploadQuarter string
	uploadField   int
	uploading     bool
}

type appState string

const (
	viewCompanies appState = "companies"
	viewDashboard appState = "dashboard"
	viewChat      appState = "chat"
	viewUpload    appState = "upload"
)

type dashTab string

const (
	tabOverview dashTab = "overview"
	tabRatios   dashTab = "ratios"
	tabGrowth   dashTab = "growth"
	tabCashFlow dashTab = "cashflow"
)

type modalState string

const (
	modalNone         modalState = ""
	modalMetricPicker modalState = "metricPicker"
)

func New(ctx context.Context, cfg config.Config, backend Backend, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	input := textinput.New()
	input.Placeholder = "Ask about the selected periods..."
	input.CharLimit = 500

	a := &App{
		ctx:        ctx,
		backend:    backend,
		cfg:        cfg,
		log:        log,
		fmtr:       format.New(cfg.UI.CurrencySymbol),
		catalog:    catalog.New(),
		store:      selection.New(),
		agg:        analytics.New(),
		state:      viewCompanies,
		dashTab:    tabOverview,
		metric:     views.MetricRevenue,
		chatInput:  input,
		uploadYear: "2024",
	}
	a.store.Subscribe(a.agg.OnSelectionChanged)
	return a
}

func (a *App) Init() tea.Cmd {
	return a.loadCompanies()
}

// commands

func (a *App) loadCompanies() tea.Cmd {
	return func() tea.Msg {
		list, err := a.backend.Companies(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return companiesMsg(list)
	}
}

func (a *App) loadCatalog(companyID int64) tea.Cmd {
	req := a.catalog.Begin(companyID)
	return func() tea.Msg {
		refs, err := a.backend.BalanceSheets(a.ctx, req.CompanyID)
		return catalogMsg{req: req, refs: refs, err: err}
	}
}

func (a *App) loadChatHistory(companyID int64) tea.Cmd {
	return func() tea.Msg {
		msgs, err := a.backend.ChatHistory(a.ctx, companyID)
		if err != nil {
			return errMsg{err}
		}
		return chatHistoryMsg(msgs)
	}
}

// dispatchAnalytics drains the requests queued by selection changes and turns
// each into a fetch. Responses resolve against the aggregator, which discards
// any that were superseded while in flight.
func (a *App) dispatchAnalytics() tea.Cmd {
	reqs := a.agg.TakePending()
	if len(reqs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(reqs))
	for i, req := range reqs {
		req := req
		cmds[i] = func() tea.Msg {
			summary, err := a.backend.AnalyticsSummary(a.ctx, req.CompanyID, req.IDs)
			return analyticsMsg{req: req, summary: summary, err: err}
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) sendChatCmd(companyID int64, query string, ids []int64) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.backend.SendChatQuery(a.ctx, companyID, query, ids)
		if err != nil {
			return chatFailedMsg{err}
		}
		return chatReplyMsg(msg)
	}
}

func (a *App) uploadCmd(companyID int64, year int, quarter, path string) tea.Cmd {
	return func() tea.Msg {
		ref, err := a.backend.UploadBalanceSheet(a.ctx, companyID, year, quarter, path)
		if err != nil {
			return uploadFailedMsg{err}
		}
		return uploadDoneMsg(ref)
	}
}

func (a *App) setCompany(c api.Company) tea.Cmd {
	a.active = &c
	a.agg.SetCompany(c.ID)
	a.store.Reset()
	a.history = nil
	a.selCursor = 0
	a.selFocused = false
	a.state = viewDashboard
	a.dashTab = tabOverview
	a.status = ""
	return tea.Batch(a.loadCatalog(c.ID), a.loadChatHistory(c.ID))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.resizeChat()
		return a, nil

	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewCompanies:
			return a.handleCompaniesKey(m)
		case viewChat:
			return a.handleChatKey(m)
		case viewUpload:
			return a.handleUploadKey(m)
		default:
			return a.handleDashboardKey(m)
		}

	case companiesMsg:
		a.companies = []api.Company(m)
		if a.companyCursor >= len(a.companies) {
			a.companyCursor = 0
		}

	case catalogMsg:
		if !a.catalog.Resolve(m.req, m.refs, m.err) {
			a.log.Debug("stale catalog response discarded",
				zap.Int64("company", m.req.CompanyID),
				zap.Uint64("gen", m.req.Gen))
			return a, nil
		}
		if m.err != nil {
			a.status = "error: " + m.err.Error()
			return a, nil
		}
		if a.selCursor >= len(a.catalog.Refs()) {
			a.selCursor = 0
		}
		// installing the universe fires the selection listener, which
		// queues exactly one analytics request
		a.store.InitUniverse(a.catalog.IDs())
		return a, a.dispatchAnalytics()

	case analyticsMsg:
		if !a.agg.Resolve(m.req, m.summary, m.err) {
			a.log.Debug("stale analytics response discarded",
				zap.Int64("company", m.req.CompanyID),
				zap.Uint64("seq", m.req.Seq))
			return a, nil
		}
		if m.err != nil {
			a.status = "error: " + m.err.Error()
		} else {
			a.status = ""
			if a.dashTab == tabCashFlow && !views.CashFlowAvailable(a.agg.Summary()) {
				a.dashTab = tabOverview
			}
		}

	case chatHistoryMsg:
		a.history = []api.ChatMessage(m)
		a.refreshChatView()

	case chatReplyMsg:
		a.chatWaiting = false
		a.history = append(a.history, api.ChatMessage(m))
		a.refreshChatView()

	case chatFailedMsg:
		a.chatWaiting = false
		a.status = "error: " + m.err.Error()

	case uploadDoneMsg:
		a.uploading = false
		ref := api.BalanceSheetRef(m)
		a.status = "uploaded " + ref.Label() + ", extraction " + ref.ExtractionStatus
		a.state = viewDashboard
		if a.active != nil {
			return a, a.loadCatalog(a.active.ID)
		}

	case uploadFailedMsg:
		a.uploading = false
		a.status = "error: " + m.err.Error()

	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleDashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "c", "esc":
		a.state = viewCompanies
		a.status = ""
	case "h":
		a.state = viewChat
		a.chatInput.Focus()
		a.refreshChatView()
		return a, textinput.Blink
	case "u":
		a.state = viewUpload
		a.uploadField = 0
		a.status = ""
	case "o":
		a.dashTab = tabOverview
	case "r":
		a.dashTab = tabRatios
	case "g":
		a.dashTab = tabGrowth
	case "f":
		if views.CashFlowAvailable(a.agg.Summary()) {
			a.dashTab = tabCashFlow
		} else {
			a.status = "no cash flow data in the selected periods"
		}
	case "m":
		a.modal = modalMetricPicker
		for i, mt := range views.Metrics() {
			if mt == a.metric {
				a.metricCursor = i
			}
		}
	case "s", "tab":
		a.selFocused = !a.selFocused
	case "up", "k":
		if a.selFocused && a.selCursor > 0 {
			a.selCursor--
		}
	case "down", "j":
		if a.selFocused && a.selCursor < len(a.catalog.Refs())-1 {
			a.selCursor++
		}
	case " ", "enter":
		if a.selFocused {
			refs := a.catalog.Refs()
			if a.selCursor < len(refs) {
				a.store.Toggle(refs[a.selCursor].ID)
				return a, a.dispatchAnalytics()
			}
		}
	case "A":
		a.store.SelectAll()
		return a, a.dispatchAnalytics()
	case "D":
		a.store.DeselectAll()
		return a, a.dispatchAnalytics()
	case "R":
		if a.active != nil {
			return a, a.loadCatalog(a.active.ID)
		}
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalMetricPicker:
		metrics := views.Metrics()
		switch m.String() {
		case "esc":
			a.modal = modalNone
		case "up", "k":
			if a.metricCursor > 0 {
				a.metricCursor--
			}
		case "down", "j":
			if a.metricCursor < len(metrics)-1 {
				a.metricCursor++
			}
		case "enter":
			a.metric = metrics[a.metricCursor]
			a.modal = modalNone
		}
	}
	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewCompanies:
		body = a.renderCompanies()
	case viewChat:
		body = a.renderChat()
	case viewUpload:
		body = a.renderUpload()
	default:
		body = a.renderDashboard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalMetricPicker:
		out := titleStyle.Render("Trend Metric") + "\n"
		for i, mt := range views.Metrics() {
			marker := " "
			if i == a.metricCursor {
				marker = "▶"
			}
			out += marker + " " + mt.Title() + "\n"
		}
		out += "[enter] Select  [esc] Cancel"
		return out
	default:
		return ""
	}
}

func parseYear(s string) (int, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < 1900 || y > 2200 {
		return 0, false
	}
	return y, true
}

// messages
type companiesMsg []api.Company

type catalogMsg struct {
	req  catalog.LoadRequest
	refs []api.BalanceSheetRef
	err  error
}

type analyticsMsg struct {
	req     analytics.Request
	summary *api.AnalyticsSummary
	err     error
}

type chatHistoryMsg []api.ChatMessage

type chatReplyMsg api.ChatMessage

type chatFailedMsg struct{ err error }

type uploadDoneMsg api.BalanceSheetRef

type uploadFailedMsg struct{ err error }

type errMsg struct{ error }

// styles
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// glamour renders chat responses; built lazily because it needs a width.
func newMarkdownRenderer(width int) *glamour.TermRenderer {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}
