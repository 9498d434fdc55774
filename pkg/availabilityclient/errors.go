package availabilityclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable возвращается, когда доступность не удалось загрузить после повторной попытки
	ErrUnavailable = errors.New("unable to load availability")

	// ErrInvalidResponse возвращается, когда ответ сервиса не удалось разобрать
	ErrInvalidResponse = errors.New("invalid availability response")

	// ErrClosed возвращается после Close
	ErrClosed = errors.New("querier is closed")
)

// StatusError ответ сервиса с кодом, отличным от 200
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("availability service responded %d: %s", e.Code, e.Message)
}

// Temporary 5xx и 429 имеет смысл повторить
func (e *StatusError) Temporary() bool {
	return e.Code >= http.StatusInternalServerError || e.Code == http.StatusTooManyRequests
}
