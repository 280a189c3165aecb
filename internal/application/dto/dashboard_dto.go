package dto

import "time"

// DashboardEntry fila del dashboard de empresa: un controlador con sus últimas señales.
type DashboardEntry struct {
	ControllerID   string           `json:"controller_id"`
	ControllerName string           `json:"controller_name"`
	Address        string           `json:"phone_number"`
	Config         map[string]any   `json:"config"`
	Status         string           `json:"status"`
	LastSeen       *time.Time       `json:"last_seen"`
	LatestSignals  []SignalResponse `json:"latest_signals"` // más reciente primero
}

// ConnectedStats conteo de controladores online/offline de una empresa.
type ConnectedStats struct {
	Connected    int `json:"connected"`
	Disconnected int `json:"disconnected"`
}

// ControllerStatus estado de conexión de un controlador.
type ControllerStatus struct {
	ControllerID   string     `json:"controller_id"`
	ControllerName string     `json:"controller_name"`
	Status         string     `json:"status"`
	LastSeen       *time.Time `json:"last_seen"`
}
