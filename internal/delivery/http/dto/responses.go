package dto

import "time"

type MessageResponse struct {
	Message string `json:"message"`
}

type RealtimeTicketResponse struct {
	Ticket    string    `json:"ticket"`
	ExpiresAt time.Time `json:"expires_at"`
}

type HealthResponse struct {
	Status string `json:"status"`
	App    string `json:"app,omitempty"`
}
