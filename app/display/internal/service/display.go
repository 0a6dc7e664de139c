package service

import (
	"net/http"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/conf"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/usecase"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/view"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

const sessionCookie = "estate_session"

// DisplayService 页面路由：完整页面、HTMX 片段和图表 SVG
type DisplayService struct {
	sessions *usecase.SessionStore
	renderer *view.Renderer
	opts     view.Options
	log      *log.Helper
}

func NewDisplayService(sessions *usecase.SessionStore, renderer *view.Renderer, ui *conf.UI, logger log.Logger) *DisplayService {
	return &DisplayService{
		sessions: sessions,
		renderer: renderer,
		opts:     view.NewOptions(ui),
		log:      log.NewHelper(logger),
	}
}

// Handler 返回挂载所有页面路由的 http.Handler
func (s *DisplayService) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("POST /query", s.query)
	mux.HandleFunc("GET /result", s.result)
	mux.HandleFunc("GET /home", s.home)
	mux.HandleFunc("GET /chart.svg", s.chart)
	mux.HandleFunc("GET /healthz", s.healthz)
	return mux
}

func (s *DisplayService) index(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, view.BuildPage(s.state(r), s.opts))
}

func (s *DisplayService) query(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := usecase.QueryInput{Value: r.FormValue("query"), Loading: ctrl.Loading()}
	if !in.Submit(func(q string) { ctrl.Submit(q) }) {
		s.log.Debugf("query ignored: loading=%v", in.Loading)
	}

	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	page := view.BuildPage(ctrl.State(), s.opts)
	page.Input.Value = in.Value
	s.renderWorkspace(w, page)
}

func (s *DisplayService) result(w http.ResponseWriter, r *http.Request) {
	s.renderWorkspace(w, view.BuildPage(s.state(r), s.opts))
}

func (s *DisplayService) home(w http.ResponseWriter, r *http.Request) {
	if ctrl := s.existing(r); ctrl != nil {
		ctrl.Home()
	}
	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderWorkspace(w, view.BuildPage(usecase.Idle{}, s.opts))
}

func (s *DisplayService) chart(w http.ResponseWriter, r *http.Request) {
	st, ok := s.state(r).(usecase.Success)
	if !ok || !st.Data.HasChart() {
		http.NotFound(w, r)
		return
	}
	svg, err := view.RenderChartSVG(view.BuildChart(st.Data.Chart), s.opts.ChartWidth, s.opts.ChartHeight)
	if err != nil {
		s.log.Warnf("render chart failed: %v", err)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(svg)
}

func (s *DisplayService) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// existing 返回 cookie 对应的已有会话，没有时为 nil
func (s *DisplayService) existing(r *http.Request) *usecase.PageController {
	id, ok := sessionID(r)
	if !ok {
		return nil
	}
	ctrl, _ := s.sessions.Lookup(id)
	return ctrl
}

// state 当前会话的页面状态，没有会话时为 Idle
func (s *DisplayService) state(r *http.Request) usecase.State {
	if ctrl := s.existing(r); ctrl != nil {
		return ctrl.State()
	}
	return usecase.Idle{}
}

// session 只在提交查询时调用：根据 cookie 找到会话，没有或不合法时签发新的会话
func (s *DisplayService) session(w http.ResponseWriter, r *http.Request) *usecase.PageController {
	if id, ok := sessionID(r); ok {
		return s.sessions.Get(id)
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return s.sessions.Get(id)
}

func (s *DisplayService) renderPage(w http.ResponseWriter, p *view.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderPage(w, p); err != nil {
		s.log.Errorf("render page failed: %v", err)
	}
}

func (s *DisplayService) renderWorkspace(w http.ResponseWriter, p *view.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.renderer.RenderWorkspace(w, p); err != nil {
		s.log.Errorf("render workspace failed: %v", err)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}
