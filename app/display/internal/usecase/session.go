package usecase

import (
	"sync"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/conf"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/repo"
	"github.com/go-kratos/kratos/v2/log"
)

const (
	defaultSessionTTL     = 30 * time.Minute
	defaultRequestTimeout = 60 * time.Second
)

type session struct {
	ctrl     *PageController
	lastSeen time.Time
}

// SessionStore 每个浏览器会话对应一个 PageController，闲置超过 ttl 的会话会被清理
type SessionStore struct {
	repo    repo.AnalysisRepo
	timeout time.Duration
	ttl     time.Duration
	logger  log.Logger
	log     *log.Helper
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessionStore(repo repo.AnalysisRepo, b *conf.Backend, ui *conf.UI, logger log.Logger) *SessionStore {
	s := &SessionStore{
		repo:     repo,
		timeout:  defaultRequestTimeout,
		ttl:      defaultSessionTTL,
		logger:   logger,
		log:      log.NewHelper(logger),
		now:      time.Now,
		sessions: make(map[string]*session),
	}
	if b != nil {
		s.timeout = conf.Duration(b.Timeout, defaultRequestTimeout)
	}
	if ui != nil {
		s.ttl = conf.Duration(ui.SessionTtl, defaultSessionTTL)
	}
	return s
}

// Get 返回会话的页面控制器，不存在时新建
func (s *SessionStore) Get(id string) *PageController {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{ctrl: NewPageController(s.repo, s.timeout, s.logger)}
		s.sessions[id] = sess
	}
	sess.lastSeen = now
	return sess.ctrl
}

// Lookup 只查找已有会话，不新建
func (s *SessionStore) Lookup(id string) (*PageController, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = now
	return sess.ctrl, true
}

// Len 当前会话数
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) sweepLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			sess.ctrl.Home()
			delete(s.sessions, id)
			s.log.Debugf("session expired: %s", id)
		}
	}
}
