// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	"go.uber.org/zap"

	wstypes "vahanbazaar-service/internal/domain/websocket"
	"vahanbazaar-service/internal/pkg/jwt"
	"vahanbazaar-service/internal/pkg/session"
)

// Hub fans marketplace events out to connected clients. Clients connect
// with a draft session ID before they have an account, so the hub indexes
// by that ID as well as by identity; the sign-in interrupt specifically
// targets clients that are not authenticated yet.
type Hub struct {
	bySession  map[string]map[*Client]bool
	byIdentity map[int64]map[*Client]bool
	mu         sync.RWMutex

	Register   chan *Client
	unregister chan *Client

	broadcast chan *BroadcastMessage

	jwtVerifier    *jwt.Verifier
	sessionManager *session.Manager
	logger         *zap.Logger
}

// BroadcastMessage targets either a set of identities, a set of draft
// sessions, or everyone on the channel when both are nil.
type BroadcastMessage struct {
	IdentityIDs []int64
	SessionIDs  []string
	Channel     wstypes.ChannelType
	Message     *wstypes.WSMessage
}

func NewHub(jwtVerifier *jwt.Verifier, sessionManager *session.Manager, logger *zap.Logger) *Hub {
	return &Hub{
		bySession:      make(map[string]map[*Client]bool),
		byIdentity:     make(map[int64]map[*Client]bool),
		Register:       make(chan *Client),
		unregister:     make(chan *Client),
		broadcast:      make(chan *BroadcastMessage, 256),
		jwtVerifier:    jwtVerifier,
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// AuthenticateClient validates an optional bearer token. An empty token
// yields an anonymous auth record bound only to the draft session.
func (h *Hub) AuthenticateClient(ctx context.Context, draftSessionID, token string) (*ClientAuth, error) {
	auth := &ClientAuth{DraftSessionID: draftSessionID}
	if token == "" {
		return auth, nil
	}

	claims, err := h.jwtVerifier.VerifyAccessToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	blacklisted, err := h.sessionManager.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrTokenBlacklisted
	}

	if _, err := h.sessionManager.GetSession(ctx, claims.IdentityID, claims.ID); err != nil {
		return nil, ErrSessionExpired
	}

	auth.IdentityID = claims.IdentityID
	auth.SessionID = claims.ID
	auth.Device = claims.Device
	return auth, nil
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.draftSessionID != "" {
		if h.bySession[client.draftSessionID] == nil {
			h.bySession[client.draftSessionID] = make(map[*Client]bool)
		}
		h.bySession[client.draftSessionID][client] = true
	}
	if client.identityID != 0 {
		if h.byIdentity[client.identityID] == nil {
			h.byIdentity[client.identityID] = make(map[*Client]bool)
		}
		h.byIdentity[client.identityID][client] = true
	}

	h.logger.Info("websocket client connected",
		zap.String("draft_session", client.draftSessionID),
		zap.Int64("identity_id", client.identityID),
		zap.Int("total", h.totalClients()),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"draft_session": client.draftSessionID,
		"identity_id":   client.identityID,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := false
	if clients, ok := h.bySession[client.draftSessionID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			removed = true
			if len(clients) == 0 {
				delete(h.bySession, client.draftSessionID)
			}
		}
	}
	if clients, ok := h.byIdentity[client.identityID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			removed = true
			if len(clients) == 0 {
				delete(h.byIdentity, client.identityID)
			}
		}
	}

	if removed {
		client.Close()
		h.logger.Info("websocket client disconnected",
			zap.String("draft_session", client.draftSessionID),
			zap.Int("total", h.totalClients()),
		)
	}
}

func (h *Hub) deliver(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	send := func(clients map[*Client]bool) {
		for client := range clients {
			if client.IsSubscribed(msg.Channel) {
				client.SendMessage(msg.Message)
			}
		}
	}

	switch {
	case msg.SessionIDs != nil:
		for _, id := range msg.SessionIDs {
			if clients, ok := h.bySession[id]; ok {
				send(clients)
			}
		}
	case msg.IdentityIDs != nil:
		for _, id := range msg.IdentityIDs {
			if clients, ok := h.byIdentity[id]; ok {
				send(clients)
			}
		}
	default:
		for _, clients := range h.bySession {
			send(clients)
		}
	}
}

// BroadcastSignInRequired tells one draft session to open the sign-in
// prompt. Sent over the system channel because the client is not
// authenticated when it matters.
func (h *Hub) BroadcastSignInRequired(draftSessionID string, step int, reason string) {
	msg := wstypes.NewMessage(wstypes.EventTypeSignInRequired, wstypes.SignInRequiredData{
		Reason: reason,
		Step:   step,
	})
	h.broadcast <- &BroadcastMessage{
		SessionIDs: []string{draftSessionID},
		Channel:    wstypes.ChannelSystem,
		Message:    msg,
	}
}

// BroadcastListingCreated announces a new advert to everyone watching the
// listings channel.
func (h *Hub) BroadcastListingCreated(data *wstypes.ListingEventData) {
	h.broadcast <- &BroadcastMessage{
		Channel: wstypes.ChannelListings,
		Message: wstypes.NewMessage(wstypes.EventTypeListingCreated, data),
	}
}

// BroadcastListingSold announces a sold advert.
func (h *Hub) BroadcastListingSold(data *wstypes.ListingEventData) {
	h.broadcast <- &BroadcastMessage{
		Channel: wstypes.ChannelListings,
		Message: wstypes.NewMessage(wstypes.EventTypeListingSold, data),
	}
}

// NotifyBookingCreated tells a seller a test drive was requested.
func (h *Hub) NotifyBookingCreated(sellerIdentityID int64, data *wstypes.BookingEventData) {
	h.broadcast <- &BroadcastMessage{
		IdentityIDs: []int64{sellerIdentityID},
		Channel:     wstypes.ChannelBookings,
		Message:     wstypes.NewMessage(wstypes.EventTypeBookingCreated, data),
	}
}

// NotifyBookingUpdated tells both parties a booking changed state.
func (h *Hub) NotifyBookingUpdated(identityIDs []int64, data *wstypes.BookingEventData) {
	h.broadcast <- &BroadcastMessage{
		IdentityIDs: identityIDs,
		Channel:     wstypes.ChannelBookings,
		Message:     wstypes.NewMessage(wstypes.EventTypeBookingUpdated, data),
	}
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.bySession {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.bySession {
		for client := range clients {
			client.Close()
		}
	}
}
