package availability

import "errors"

var (
	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("availability: duration must be positive")

	// ErrInvalidStep возвращается при неположительном шаге слотов
	ErrInvalidStep = errors.New("availability: slot step must be positive")

	// ErrMissingLocation возвращается, если не задан часовой пояс
	ErrMissingLocation = errors.New("availability: location is required")
)
