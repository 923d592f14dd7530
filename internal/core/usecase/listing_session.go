package usecase

import (
	"context"
	"sync"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

const (
	defaultSessionIdleTTL = 30 * time.Minute
	defaultMaxSessions    = 10000
)

type listingSession struct {
	generation uint64
	cancel     context.CancelFunc
	view       *domain.ListingView
	touched    time.Time
}

// ListingSessions: в пределах одной сессии актуален только последний запрос.
// Новый Load отменяет предыдущий, а его результат уже не станет текущим видом.
type ListingSessions struct {
	list usecases_port.ListPropertiesUseCase

	mu        sync.Mutex
	sessions  map[string]*listingSession
	idleTTL   time.Duration
	lastSweep time.Time
	// при достижении лимита новая сессия вытесняет самую давнюю неактивную
	maxSessions int
	now         func() time.Time
}

func NewListingSessions(list usecases_port.ListPropertiesUseCase, idleTTL time.Duration) *ListingSessions {
	if idleTTL <= 0 {
		idleTTL = defaultSessionIdleTTL
	}
	return &ListingSessions{
		list:        list,
		sessions:    make(map[string]*listingSession),
		idleTTL:     idleTTL,
		maxSessions: defaultMaxSessions,
		now:         time.Now,
	}
}

// Load без sessionID просто выполняет запрос.
func (s *ListingSessions) Load(ctx context.Context, sessionID string, req domain.ListingRequest) (*domain.ListingView, error) {
	if sessionID == "" {
		return s.list.Execute(ctx, req)
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "ListingSessions",
		"session_id": sessionID,
	})

	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	now := s.now()
	s.evictIdleLocked(now)

	sess, ok := s.sessions[sessionID]
	if !ok {
		s.makeRoomLocked(now)
		sess = &listingSession{}
		s.sessions[sessionID] = sess
	}
	if sess.cancel != nil {
		logger.Debug("Cancelling previous in-flight load", port.Fields{"generation": sess.generation})
		sess.cancel()
	}
	sess.generation++
	generation := sess.generation
	sess.cancel = cancel
	sess.view = domain.LoadingView(req.Filter)
	sess.touched = now
	s.mu.Unlock()

	view, err := s.list.Execute(loadCtx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.sessions[sessionID]; !ok || current != sess || sess.generation != generation {
		logger.Info("Discarding stale listing result", port.Fields{"generation": generation})
		return nil, domain.ErrSuperseded
	}
	sess.cancel = nil
	sess.view = view
	sess.touched = s.now()
	return view, err
}

// Snapshot - последний вид сессии; во время загрузки это состояние loading.
func (s *ListingSessions) Snapshot(sessionID string) (*domain.ListingView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.view == nil {
		return nil, false
	}
	return sess.view, true
}

// evictIdleLocked удаляет давно неактивные сессии без загрузки в полёте.
func (s *ListingSessions) evictIdleLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.idleTTL {
		return
	}
	s.lastSweep = now
	for id, sess := range s.sessions {
		if sess.cancel == nil && now.Sub(sess.touched) > s.idleTTL {
			delete(s.sessions, id)
		}
	}
}

// makeRoomLocked держит число сессий в пределах maxSessions: сначала внеочередная
// чистка простаивающих, затем вытеснение самой давно тронутой сессии без загрузки.
// Сессии с загрузкой в полёте не вытесняются.
func (s *ListingSessions) makeRoomLocked(now time.Time) {
	if len(s.sessions) < s.maxSessions {
		return
	}
	s.lastSweep = time.Time{}
	s.evictIdleLocked(now)

	for len(s.sessions) >= s.maxSessions {
		oldestID := ""
		var oldest time.Time
		for id, sess := range s.sessions {
			if sess.cancel != nil {
				continue
			}
			if oldestID == "" || sess.touched.Before(oldest) {
				oldestID, oldest = id, sess.touched
			}
		}
		if oldestID == "" {
			return
		}
		delete(s.sessions, oldestID)
	}
}
