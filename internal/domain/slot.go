package domain

import "time"

// Slot кандидат на запись. Не сохраняется, вычисляется на каждый запрос.
type Slot struct {
	Start    time.Time
	End      time.Time
	StaffIDs []string // Мастера, которые могут принять запись в это время
}

// DurationMinutes длительность слота в минутах
func (s *Slot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}
