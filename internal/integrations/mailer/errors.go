package mailer

import "errors"

var (
	// ErrInvalidMessage возвращается для письма без получателя
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrSendFailed возвращается при ошибке SMTP
	ErrSendFailed = errors.New("mailer: send failed")
)
