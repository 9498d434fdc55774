package availabilityclient

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// SlotsPayload ответ сервиса доступности как он пришёл по сети
type SlotsPayload struct {
	Date            string        `json:"date"`
	Timezone        string        `json:"timezone"`
	DurationMinutes int           `json:"durationMinutes"`
	Slots           []SlotPayload `json:"slots"`
	Message         string        `json:"message,omitempty"`
}

// SlotPayload слот в формате ответа
type SlotPayload struct {
	StartISO string   `json:"startISO"`
	EndISO   string   `json:"endISO"`
	StaffIDs []string `json:"staffIds"`
}

// MonthPayload ответ индекса полностью занятых дат
type MonthPayload struct {
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	FullyBooked []string `json:"fullyBooked"`
}

// Slot проверенный слот [Start, End)
type Slot struct {
	Start    time.Time
	End      time.Time
	StaffIDs []string
}

// Slots проверенный результат запроса на дату
type Slots struct {
	Date            types.Date
	Timezone        string
	DurationMinutes int
	Slots           []Slot
	Message         string
	Dropped         int // Слоты, не прошедшие проверку
}

// Result результат запроса, доставляемый подписчику
type Result struct {
	Seq    uint64
	Params Params
	Slots  *Slots
	Cached bool
	Err    error
}

// Warning сигнал о большой доле отброшенных слотов
type Warning struct {
	Params  Params
	Total   int
	Dropped int
}

// DropRate доля отброшенных слотов
func (w Warning) DropRate() float64 {
	if w.Total == 0 {
		return 0
	}
	return float64(w.Dropped) / float64(w.Total)
}
