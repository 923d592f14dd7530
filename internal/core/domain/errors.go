package domain

import "errors"

var (
	// ErrFetchFailed - удалённый сервис выдачи недоступен или ответил не 2xx.
	ErrFetchFailed = errors.New("listing fetch failed")

	// ErrSuperseded - результат устарел: в той же сессии уже запущен более свежий запрос.
	ErrSuperseded = errors.New("listing request superseded by a newer one")

	ErrInvalidPropertyID         = errors.New("invalid property id")
	ErrInvalidOwner              = errors.New("invalid favorites owner")
	ErrInvalidTranslationRequest = errors.New("invalid translation request")
)
