package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/domain"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/repo"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/usecase"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/view"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-kratos/kratos/v2/log"
)

// Config 终端界面配置
type Config struct {
	Timeout time.Duration
	// ChartOut 非空时每次成功都把趋势图 SVG 写到该路径
	ChartOut string
	Options  view.Options
}

// resultMsg 后台请求的结果，带着发起时的 ticket
type resultMsg struct {
	ticket usecase.Ticket
	data   *domain.AnalysisResponse
	err    error
}

// App 终端版本的查询界面，与网页共用同一套页面状态机
type App struct {
	repo repo.AnalysisRepo
	ctrl *usecase.PageController
	cfg  Config
	log  *log.Helper

	input   textinput.Model
	spinner spinner.Model
	width   int
	notice  string
}

func NewApp(r repo.AnalysisRepo, cfg Config, logger log.Logger) App {
	ti := textinput.New()
	ti.Placeholder = "e.g. Compare Wakad and Akurdi"
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorSpinner)

	return App{
		repo:    r,
		ctrl:    usecase.NewPageController(r, cfg.Timeout, logger),
		cfg:     cfg,
		log:     log.NewHelper(logger),
		input:   ti,
		spinner: s,
	}
}

func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return a, tea.Quit
		case tea.KeyEsc:
			a.ctrl.Home()
			a.notice = ""
			a.input.Focus()
			return a, nil
		case tea.KeyEnter:
			return a.submit()
		}
		if a.ctrl.Loading() {
			return a, nil
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case resultMsg:
		if a.ctrl.Resolve(msg.ticket, msg.data, msg.err) {
			a.input.Focus()
			a.exportChart()
		}
		return a, nil

	case spinner.TickMsg:
		if a.ctrl.Loading() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) submit() (tea.Model, tea.Cmd) {
	in := usecase.QueryInput{Value: a.input.Value(), Loading: a.ctrl.Loading()}
	var cmd tea.Cmd
	if !in.Submit(func(q string) {
		t := a.ctrl.Begin(q)
		cmd = tea.Batch(a.spinner.Tick, a.fetch(t))
	}) {
		return a, nil
	}
	a.input.SetValue(in.Value)
	a.input.Blur()
	a.notice = ""
	return a, cmd
}

func (a App) fetch(t usecase.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if a.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
			defer cancel()
		}
		data, err := a.repo.Analyze(ctx, t.Query)
		return resultMsg{ticket: t, data: data, err: err}
	}
}

func (a *App) exportChart() {
	if a.cfg.ChartOut == "" {
		return
	}
	st, ok := a.ctrl.State().(usecase.Success)
	if !ok || !st.Data.HasChart() {
		return
	}
	svg, err := view.RenderChartSVG(view.BuildChart(st.Data.Chart), a.cfg.Options.ChartWidth, a.cfg.Options.ChartHeight)
	if err != nil {
		a.log.Warnf("render chart failed: %v", err)
		return
	}
	if err := os.WriteFile(a.cfg.ChartOut, svg, 0o644); err != nil {
		a.notice = fmt.Sprintf("could not write chart: %v", err)
		return
	}
	a.notice = "chart written to " + a.cfg.ChartOut
}

func (a App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Real Estate Analysis"))
	b.WriteString("\n\n")

	page := view.BuildPage(a.ctrl.State(), a.cfg.Options)
	if page.Loading {
		fmt.Fprintf(&b, "%s Analyzing %q...\n", a.spinner.View(), page.Query)
	} else {
		b.WriteString(a.input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch page.Phase {
	case usecase.PhaseFailure:
		b.WriteString(errorStyle.Render(page.Error))
		b.WriteString("\n")
	case usecase.PhaseSuccess:
		b.WriteString(renderSummary(page.Summary))
		if page.Chart != nil {
			b.WriteString(renderChart(page.ChartData))
		}
		if page.Table != nil {
			b.WriteString(renderTable(page.Table))
		}
	}

	if a.notice != "" {
		b.WriteString(mutedStyle.Render(a.notice))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("enter submit • esc home • ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}

func renderSummary(s *view.Summary) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(s.Text)
	b.WriteString("\n")

	badges := []string{badgeStyle.Render(s.Provider)}
	if s.QueryType != "" {
		badges = append(badges, badgeStyle.Render(s.QueryType))
	}
	for _, src := range s.Sources {
		badges = append(badges, badgeStyle.Render(src))
	}
	if s.Areas != "" {
		badges = append(badges, badgeStyle.Render("Areas: "+s.Areas))
	}
	b.WriteString(strings.Join(badges, " "))
	return panelStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func renderChart(d *view.ChartData) string {
	if d == nil {
		return ""
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(d.Headers...).
		Rows(d.Rows...)
	return headerStyle.Render("Price trend") + "\n" + t.String() + "\n"
}

func renderTable(tbl *view.Table) string {
	if len(tbl.Columns) == 0 {
		return ""
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(tbl.Headers...).
		Rows(tbl.Rows...)
	return headerStyle.Render(fmt.Sprintf("Records (%d)", len(tbl.Rows))) + "\n" + t.String() + "\n"
}
