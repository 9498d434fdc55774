package availabilityclient

import "context"

// Source транспорт до сервиса доступности
type Source interface {
	Slots(ctx context.Context, p Params) (*SlotsPayload, error)
	FullyBookedDates(ctx context.Context, p MonthParams) (*MonthPayload, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
