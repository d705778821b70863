package quiz

import "errors"

var (
	ErrAccountNotFound = errors.New("account_not_found")
	ErrSessionActive   = errors.New("quiz_session_active")
	ErrNoActiveSession = errors.New("no_active_quiz_session")
	ErrInvalidOption   = errors.New("invalid_option")
	ErrNoQuestions     = errors.New("no_quiz_questions")
	ErrInvalidQuestion = errors.New("invalid_quiz_question")
)
