package service

import "errors"

// Ошибки доменных операций ежедневной викторины
var (
	// ErrNoQuizToday означает, что на сегодняшнюю дату викторина не запланирована.
	ErrNoQuizToday = errors.New("no quiz scheduled for today")

	// ErrAlreadyAttempted означает, что студент уже сдал сегодняшнюю викторину.
	ErrAlreadyAttempted = errors.New("quiz already attempted today")

	// ErrQuizClosed означает, что окно сдачи викторины ещё не открылось или уже закрылось.
	ErrQuizClosed = errors.New("quiz submission window is closed")

	// ErrQuizMisconfigured означает, что викторина ссылается на недостающие вопросы.
	// Такая викторина не отдаётся клиенту усечённой — это ошибка конфигурации.
	ErrQuizMisconfigured = errors.New("quiz references missing questions")

	// ErrInvalidCredentials означает неверную пару логин/пароль.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
