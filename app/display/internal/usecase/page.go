package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/domain"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/repo"
	"github.com/go-kratos/kratos/v2/log"
)

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// State 页面状态，只能是 Idle、Loading、Success、Failure 之一
type State interface {
	Phase() Phase
	isState()
}

type Idle struct{}

type Loading struct {
	Query   string
	Seq     uint64
	Started time.Time
}

type Success struct {
	Query string
	Seq   uint64
	Data  *domain.AnalysisResponse
}

type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureAPI
	FailureNetwork
)

type Failure struct {
	Query   string
	Seq     uint64
	Kind    FailureKind
	Message string
}

func (Idle) Phase() Phase    { return PhaseIdle }
func (Loading) Phase() Phase { return PhaseLoading }
func (Success) Phase() Phase { return PhaseSuccess }
func (Failure) Phase() Phase { return PhaseFailure }

func (Idle) isState()    {}
func (Loading) isState() {}
func (Success) isState() {}
func (Failure) isState() {}

// Ticket 一次提交的凭据，Resolve 时用于判断结果是否过期
type Ticket struct {
	Seq   uint64
	Query string
}

// PageController 管理单个页面的查询生命周期。
// 每次提交都会递增序号，只有最新序号的结果会被应用。
type PageController struct {
	repo    repo.AnalysisRepo
	timeout time.Duration
	log     *log.Helper

	mu     sync.Mutex
	state  State
	seq    uint64
	cancel context.CancelFunc
}

// NewPageController timeout 为 0 时不额外限制请求时长
func NewPageController(repo repo.AnalysisRepo, timeout time.Duration, logger log.Logger) *PageController {
	return &PageController{
		repo:    repo,
		timeout: timeout,
		log:     log.NewHelper(logger),
		state:   Idle{},
	}
}

// State 当前状态
func (c *PageController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loading 是否有请求在进行中
func (c *PageController) Loading() bool {
	return c.State().Phase() == PhaseLoading
}

// Begin 进入 Loading 并签发新序号，之前未完成的请求结果都会被丢弃
func (c *PageController) Begin(query string) Ticket {
	return c.begin(query, nil)
}

func (c *PageController) begin(query string, cancel context.CancelFunc) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.seq++
	c.state = Loading{Query: query, Seq: c.seq, Started: time.Now()}
	return Ticket{Seq: c.seq, Query: query}
}

// Resolve 应用请求结果。ticket 已过期（有更新的提交或已回到首页）时丢弃并返回 false。
func (c *PageController) Resolve(t Ticket, data *domain.AnalysisResponse, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.Seq != c.seq {
		c.log.Debugf("discard stale analysis result: seq=%d current=%d", t.Seq, c.seq)
		return false
	}
	if _, ok := c.state.(Loading); !ok {
		return false
	}
	c.cancel = nil

	switch {
	case err != nil:
		f := failureOf(err)
		f.Query, f.Seq = t.Query, t.Seq
		c.state = f
		c.log.Warnf("analysis failed: query=%q err=%s", t.Query, f.Message)
	case data == nil:
		c.state = Failure{Query: t.Query, Seq: t.Seq, Kind: FailureAPI, Message: domain.DefaultAPIErrorMessage}
	default:
		c.state = Success{Query: t.Query, Seq: t.Seq, Data: data}
		c.log.Infof("analysis finished: query=%q chart=%d table=%d", t.Query, len(data.Chart), len(data.Table))
	}
	return true
}

// Submit 开始一次查询并在后台请求分析后端
func (c *PageController) Submit(query string) Ticket {
	ctx, cancel := c.requestContext()
	t := c.begin(query, cancel)
	c.log.Infof("analysis submitted: seq=%d query=%q", t.Seq, query)

	go func() {
		defer cancel()
		data, err := c.repo.Analyze(ctx, query)
		c.Resolve(t, data, err)
	}()
	return t
}

// Home 回到初始状态，进行中的请求被取消且其结果不再生效
func (c *PageController) Home() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.state = Idle{}
}

func (c *PageController) requestContext() (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(context.Background(), c.timeout)
	}
	return context.WithCancel(context.Background())
}

func failureOf(err error) Failure {
	f := Failure{Message: err.Error()}
	var (
		apiErr *domain.APIError
		netErr *domain.NetworkError
	)
	switch {
	case errors.As(err, &apiErr):
		f.Kind = FailureAPI
	case errors.As(err, &netErr):
		f.Kind = FailureNetwork
	}
	if strings.TrimSpace(f.Message) == "" {
		f.Message = domain.DefaultNetworkErrorMessage
	}
	return f
}
