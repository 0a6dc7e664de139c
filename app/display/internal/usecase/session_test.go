package usecase

import (
	"testing"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/conf"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
)

func TestSessionStore_GetReturnsSameController(t *testing.T) {
	s := NewSessionStore(&mockAnalysisRepo{}, nil, nil, log.DefaultLogger)

	a := s.Get("a")
	assert.Same(t, a, s.Get("a"))
	assert.NotSame(t, a, s.Get("b"))
	assert.Equal(t, 2, s.Len())
}

func TestSessionStore_ExpiresIdleSessions(t *testing.T) {
	s := NewSessionStore(&mockAnalysisRepo{}, nil, &conf.UI{SessionTtl: "1m"}, log.DefaultLogger)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	old := s.Get("old")
	old.Begin("Wakad")

	now = now.Add(2 * time.Minute)
	s.Get("fresh")

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, PhaseIdle, old.State().Phase())
	assert.NotSame(t, old, s.Get("old"))
}

func TestSessionStore_LookupDoesNotCreate(t *testing.T) {
	s := NewSessionStore(&mockAnalysisRepo{}, nil, nil, log.DefaultLogger)

	_, ok := s.Lookup("a")
	assert.False(t, ok)
	assert.Zero(t, s.Len())

	a := s.Get("a")
	got, ok := s.Lookup("a")
	assert.True(t, ok)
	assert.Same(t, a, got)
}
