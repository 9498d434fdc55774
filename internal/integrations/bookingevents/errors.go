package bookingevents

import "errors"

var (
	// ErrPublish возвращается при ошибке отправки события
	ErrPublish = errors.New("bookingevents: failed to publish event")

	// ErrDecode возвращается при некорректном сообщении
	ErrDecode = errors.New("bookingevents: failed to decode event")
)
