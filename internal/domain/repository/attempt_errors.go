package repository

import "errors"

var (
	// ErrDuplicateAttempt означает, что у пользователя уже есть попытка за эту дату.
	ErrDuplicateAttempt = errors.New("attempt for this user and date already exists")
)
