package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/domain"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/usecase"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/view"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	resp *domain.AnalysisResponse
	err  error
}

func (s *stubRepo) Analyze(ctx context.Context, query string) (*domain.AnalysisResponse, error) {
	return s.resp, s.err
}

func newTestApp(r *stubRepo, chartOut string) App {
	return NewApp(r, Config{Timeout: time.Second, ChartOut: chartOut, Options: view.NewOptions(nil)}, log.DefaultLogger)
}

func press(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func TestApp_SubmitAndResolve(t *testing.T) {
	r := &stubRepo{resp: &domain.AnalysisResponse{
		Summary: "Wakad prices rose.",
		Area:    "Wakad",
		Chart: []record.Record{
			{{Key: "year", Value: 2020.0}, {Key: "__price_computed__", Value: 4000.0}},
		},
	}}
	out := filepath.Join(t.TempDir(), "chart.svg")
	a := newTestApp(r, out)
	a.input.SetValue("  Wakad  ")

	a, cmd := press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, a.ctrl.Loading())
	assert.Equal(t, "", a.input.Value())
	assert.Contains(t, a.View(), "Analyzing")

	st := a.ctrl.State().(usecase.Loading)
	msg := a.fetch(usecase.Ticket{Seq: st.Seq, Query: st.Query})()
	a, _ = press(t, a, msg)

	assert.Equal(t, usecase.PhaseSuccess, a.ctrl.State().Phase())
	assert.Contains(t, a.View(), "Wakad prices rose.")
	assert.FileExists(t, out)
}

func TestApp_EnterWhileLoadingIsIgnored(t *testing.T) {
	a := newTestApp(&stubRepo{resp: &domain.AnalysisResponse{}}, "")
	a.input.SetValue("Wakad")
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	seq := a.ctrl.State().(usecase.Loading).Seq

	a.input.SetValue("Akurdi")
	a, cmd := press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, seq, a.ctrl.State().(usecase.Loading).Seq)
}

func TestApp_BlankInputIsIgnored(t *testing.T) {
	a := newTestApp(&stubRepo{}, "")
	a.input.SetValue("   ")
	a, cmd := press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, usecase.PhaseIdle, a.ctrl.State().Phase())
}

func TestApp_EscDropsPendingResult(t *testing.T) {
	a := newTestApp(&stubRepo{err: &domain.APIError{Status: 500}}, "")
	a.input.SetValue("Wakad")
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	st := a.ctrl.State().(usecase.Loading)

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	a, _ = press(t, a, a.fetch(usecase.Ticket{Seq: st.Seq, Query: st.Query})())

	assert.Equal(t, usecase.PhaseIdle, a.ctrl.State().Phase())
}

func TestApp_FailureIsShown(t *testing.T) {
	a := newTestApp(&stubRepo{err: &domain.APIError{Status: 400, Message: "No query provided"}}, "")
	a.input.SetValue("Wakad")
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	st := a.ctrl.State().(usecase.Loading)
	a, _ = press(t, a, a.fetch(usecase.Ticket{Seq: st.Seq, Query: st.Query})())

	assert.Contains(t, a.View(), "No query provided")
}

func TestRenderSummary_Badges(t *testing.T) {
	out := renderSummary(&view.Summary{
		Text:     "Prices rose.",
		Provider: "Groq AI",
		Sources:  []string{"flat rate", "shop rate"},
	})
	assert.Contains(t, out, "Groq AI")
	assert.Contains(t, out, "flat rate")
	assert.Contains(t, out, "shop rate")
	assert.NotContains(t, out, "Sources:")
	assert.NotContains(t, out, "by Groq AI")
}
