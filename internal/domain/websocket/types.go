// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"time"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Subscription events (client -> server)
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"

	// Marketplace events (server -> client)
	EventTypeSignInRequired EventType = "auth:sign_in_required"
	EventTypeListingCreated EventType = "listing:created"
	EventTypeListingSold    EventType = "listing:sold"
	EventTypeBookingCreated EventType = "booking:created"
	EventTypeBookingUpdated EventType = "booking:updated"
)

type ChannelType string

const (
	ChannelListings ChannelType = "listings"
	ChannelBookings ChannelType = "bookings"
	ChannelSystem   ChannelType = "system"
)

// WSMessage is the wire envelope for every hub event.
type WSMessage struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewMessage stamps an envelope with the current time.
func NewMessage(t EventType, payload interface{}) *WSMessage {
	return &WSMessage{Type: t, Payload: payload, Timestamp: time.Now()}
}

// ToJSON serializes the envelope for the wire.
func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage decodes an inbound client frame.
func ParseMessage(data []byte) (*WSMessage, error) {
	var m WSMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SubscribeRequest is the payload of a subscribe/unsubscribe frame.
type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// ErrorData describes a rejected client frame.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SignInRequiredData asks the client shell to open the sign-in prompt. The
// draft flow resumes by re-reading persisted state once a session exists.
type SignInRequiredData struct {
	Reason string `json:"reason"`
	Step   int    `json:"step"`
}

// ListingEventData announces a listing lifecycle change.
type ListingEventData struct {
	ListingID string `json:"listing_id"`
	Category  string `json:"category"`
	City      string `json:"city"`
}

// BookingEventData notifies a seller about a test-drive request.
type BookingEventData struct {
	BookingID   string    `json:"booking_id"`
	ListingID   string    `json:"listing_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
}

// SessionEventData carries forced-logout style session events.
type SessionEventData struct {
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
}
