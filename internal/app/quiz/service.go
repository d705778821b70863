package quiz

import (
	"context"
	"errors"
	"sync"
	"time"

	"lizard-economy/internal/config"
	"lizard-economy/internal/cooldown"
	"lizard-economy/internal/ledger"
	"lizard-economy/internal/rng"
	"lizard-economy/internal/store"

	"github.com/rs/zerolog/log"
)

const finishTimeout = 5 * time.Second

type session struct {
	id        string
	userID    int64
	question  store.QuizQuestion
	number    int
	streak    int
	expiresAt time.Time
	timer     *time.Timer
}

// Service runs one quiz session per user. Each question carries a timer; an
// answer stops it, and a timer that already fired owns the session's ending.
type Service struct {
	store   *store.Store
	cfg     config.EconomyConfig
	rnd     rng.Source
	now     func() time.Time
	policy  cooldown.Bifurcated
	onTimer func(TimeoutEvent)

	mu        sync.Mutex
	sessions  map[int64]*session
	questions []store.QuizQuestion
	// unrecorded holds failure stamps the store did not accept.
	unrecorded map[int64]time.Time
}

func NewService(st *store.Store, cfg config.EconomyConfig, rnd rng.Source, now func() time.Time) *Service {
	if rnd == nil {
		rnd = rng.Global
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		store: st,
		cfg:   cfg,
		rnd:   rnd,
		now:   now,
		policy: cooldown.Bifurcated{
			Kind:    cooldown.KindQuiz,
			Success: cfg.QuizLongCooldown,
			Failure: cfg.QuizShortCooldown,
		},
		sessions:   map[int64]*session{},
		unrecorded: map[int64]time.Time{},
	}
}

// OnTimeout registers a hook called after a question expires unanswered.
func (s *Service) OnTimeout(fn func(TimeoutEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTimer = fn
}

// Reload refreshes the cached question set from the store.
func (s *Service) Reload(ctx context.Context) error {
	qs, err := s.store.Queries().ListQuizQuestions(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.questions = qs
	s.mu.Unlock()
	return nil
}

func (s *Service) Active(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	return ok
}

func (s *Service) Start(ctx context.Context, userID int64) (*Question, error) {
	if s.Active(userID) {
		return nil, ErrSessionActive
	}
	if err := s.enforceUnrecorded(userID); err != nil {
		return nil, err
	}
	acc, err := s.store.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if err := s.policy.Enforce(acc.LastQuizAt, acc.LastQuizWon, s.now()); err != nil {
		return nil, err
	}

	s.mu.Lock()
	empty := len(s.questions) == 0
	s.mu.Unlock()
	if empty {
		if err := s.Reload(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[userID]; ok {
		return nil, ErrSessionActive
	}
	if len(s.questions) == 0 {
		return nil, ErrNoQuestions
	}
	sess := &session{id: store.NewID(), userID: userID}
	s.sessions[userID] = sess
	s.askLocked(sess, 0)
	log.Info().Int64("user_id", userID).Str("session_id", sess.id).Msg("quiz started")
	return s.viewLocked(sess), nil
}

// askLocked moves the session to a fresh question, avoiding the previous one
// when there is a choice, and arms its timer.
func (s *Service) askLocked(sess *session, prevID int64) {
	pool := s.questions
	if len(pool) > 1 && prevID != 0 {
		pool = make([]store.QuizQuestion, 0, len(s.questions)-1)
		for _, q := range s.questions {
			if q.ID != prevID {
				pool = append(pool, q)
			}
		}
	}
	sess.question = rng.Pick(s.rnd, pool)
	sess.number++
	sess.expiresAt = s.now().Add(s.cfg.QuizQuestionTimeout)
	number := sess.number
	sess.timer = time.AfterFunc(s.cfg.QuizQuestionTimeout, func() {
		s.expire(sess.userID, sess.id, number)
	})
}

func (s *Service) viewLocked(sess *session) *Question {
	return &Question{
		SessionID: sess.id,
		Number:    sess.number,
		Of:        s.cfg.QuizTargetStreak,
		Text:      sess.question.Question,
		Options:   append([]string(nil), sess.question.Options...),
		ExpiresAt: sess.expiresAt,
	}
}

// Answer resolves the current question. Answers for another session, or
// arriving after the timer fired, get ErrNoActiveSession.
func (s *Service) Answer(ctx context.Context, userID int64, sessionID string, option int) (*AnswerResult, error) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok || sess.id != sessionID {
		s.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	if option < 0 || option >= len(sess.question.Options) {
		s.mu.Unlock()
		return nil, ErrInvalidOption
	}
	if !sess.timer.Stop() {
		s.mu.Unlock()
		return nil, ErrNoActiveSession
	}

	res := &AnswerResult{
		Correct:       option == sess.question.Correct,
		CorrectOption: sess.question.Correct,
	}
	if res.Correct {
		sess.streak++
	}
	res.Streak = sess.streak

	if res.Correct && sess.streak < s.cfg.QuizTargetStreak {
		s.askLocked(sess, sess.question.ID)
		res.Outcome = OutcomeContinue
		res.Next = s.viewLocked(sess)
		s.mu.Unlock()
		return res, nil
	}
	delete(s.sessions, userID)
	s.mu.Unlock()

	won := res.Correct
	level, err := s.finish(ctx, sess, won)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("session_id", sess.id).Msg("finish quiz failed")
		s.recordFailure(userID, sess.id, s.now())
		return nil, err
	}
	res.Level = level
	if won {
		res.Outcome = OutcomeWon
		res.Reward = s.cfg.QuizReward
	} else {
		res.Outcome = OutcomeLost
	}
	res.NextAt = s.now().Add(s.policy.Policy(won).Duration)
	return res, nil
}

// finish stamps the attempt and applies the outcome: a win raises the level
// and pays the reward, a wrong answer lowers the level.
func (s *Service) finish(ctx context.Context, sess *session, won bool) (int, error) {
	now := s.now()
	var level int
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		if err := q.RecordQuizResult(ctx, sess.userID, now, won, sess.streak); err != nil {
			return err
		}
		delta := -1
		if won {
			delta = 1
			if _, err := ledger.On(q).CreditQuizReward(ctx, sess.userID, s.cfg.QuizReward, sess.id); err != nil {
				return err
			}
		}
		var err error
		level, err = q.AdjustLevel(ctx, sess.userID, delta)
		return err
	})
	if err != nil {
		return 0, err
	}
	log.Info().Int64("user_id", sess.userID).Str("session_id", sess.id).Bool("won", won).Int("streak", sess.streak).Msg("quiz finished")
	return level, nil
}

func (s *Service) expire(userID int64, sessionID string, number int) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok || sess.id != sessionID || sess.number != number {
		s.mu.Unlock()
		return
	}
	delete(s.sessions, userID)
	hook := s.onTimer
	s.mu.Unlock()

	now := s.now()
	s.recordFailure(userID, sessionID, now)
	log.Info().Int64("user_id", userID).Str("session_id", sessionID).Int("streak", sess.streak).Msg("quiz question timed out")
	if hook != nil {
		hook(TimeoutEvent{
			UserID:    userID,
			SessionID: sessionID,
			Streak:    sess.streak,
			NextAt:    now.Add(s.cfg.QuizShortCooldown),
		})
	}
}

// recordFailure stamps a failed attempt outside the caller's context. When the
// store rejects the stamp it is kept in memory so Start still applies the
// short cooldown.
func (s *Service) recordFailure(userID int64, sessionID string, at time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), finishTimeout)
	defer cancel()
	err := s.store.Queries().RecordQuizResult(ctx, userID, at, false, 0)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("session_id", sessionID).Msg("record quiz failure failed")
		s.unrecorded[userID] = at
		return
	}
	delete(s.unrecorded, userID)
}

func (s *Service) enforceUnrecorded(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.unrecorded[userID]
	if !ok {
		return nil
	}
	err := s.policy.Enforce(at, false, s.now())
	if err == nil {
		delete(s.unrecorded, userID)
	}
	return err
}

// Shutdown stops every pending question timer.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.timer.Stop()
		delete(s.sessions, id)
	}
}
