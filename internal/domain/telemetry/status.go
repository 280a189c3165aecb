package telemetry

import (
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// DefaultOnlineThreshold antigüedad máxima de la última señal para considerar online; lo aplica
// la configuración de la analítica cuando no se define otro.
const DefaultOnlineThreshold = 5 * time.Minute

// ConnectionState online | offline.
type ConnectionState string

const (
	Online  ConnectionState = "online"
	Offline ConnectionState = "offline"
)

// ConnectionStatus estado derivado de un controlador. LastSeen es nil si nunca reportó.
type ConnectionStatus struct {
	State    ConnectionState
	LastSeen *time.Time
}

// IsOnline atajo para State == Online.
func (s ConnectionStatus) IsOnline() bool { return s.State == Online }

// EvaluateConnection clasifica por la antigüedad de la última señal: online si
// now - lastSeen <= threshold (el borde cuenta como online). El umbral se usa tal cual llega.
func EvaluateConnection(lastSeen *time.Time, now time.Time, threshold time.Duration) ConnectionStatus {
	if lastSeen == nil {
		return ConnectionStatus{State: Offline}
	}
	seen := *lastSeen
	state := Offline
	if now.Sub(seen) <= threshold {
		state = Online
	}
	return ConnectionStatus{State: state, LastSeen: &seen}
}

// LastSeen timestamp más reciente de la lista, sin asumir orden; nil si está vacía.
func LastSeen(signals []*entity.Signal) *time.Time {
	var latest *time.Time
	for _, s := range signals {
		if s == nil {
			continue
		}
		if latest == nil || s.Timestamp.After(*latest) {
			ts := s.Timestamp
			latest = &ts
		}
	}
	return latest
}
