package ws

import (
	"context"
	"net/http"
	"sync"

	"curbside-auctions/internal/config"
	"curbside-auctions/internal/domain/shared"
	"curbside-auctions/internal/ports/outbound"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// WsHandler upgrades auction-page watchers to WebSocket connections and
// relays broadcast events to them.
type WsHandler struct {
	clients     map[string]*WsClient // clientID -> client
	clientsMu   sync.RWMutex
	upgrader    websocket.Upgrader
	auctionRepo outbound.AuctionRepository
	broadcaster outbound.Broadcaster
	logger      zerolog.Logger
}

type WsHandlerParams struct {
	Config      *config.Config
	AuctionRepo outbound.AuctionRepository
	Broadcaster outbound.Broadcaster
	Logger      zerolog.Logger
}

// NewHandler creates a new WebSocket handler.
func NewHandler(params WsHandlerParams) *WsHandler {
	return &WsHandler{
		clients: make(map[string]*WsClient),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  params.Config.WebSocket.ReadBufferSize,
			WriteBufferSize: params.Config.WebSocket.WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		auctionRepo: params.AuctionRepo,
		broadcaster: params.Broadcaster,
		logger:      params.Logger.With().Str("component", "ws_handler").Logger(),
	}
}

// HandleWebSocket upgrades a connection for the auction named by the slug
// query parameter and streams its events until the client disconnects.
func (handler *WsHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		http.Error(w, "slug is required", http.StatusBadRequest)
		return
	}
	if _, err := handler.auctionRepo.GetBySlug(r.Context(), slug); err != nil {
		if err == shared.ErrAuctionNotFound {
			http.Error(w, "auction not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		handler.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	client := NewClient(WsClientParams{
		Slug:   slug,
		Conn:   conn,
		Logger: handler.logger,
	})

	handler.registerClient(client)
	client.Start()

	eventChan := make(chan outbound.Event, 100)
	if err := handler.broadcaster.Subscribe(context.Background(), slug, client.id, eventChan); err != nil {
		handler.logger.Error().Err(err).Str("slug", slug).Msg("Failed to subscribe client")
		client.Stop()
		handler.unregisterClient(client)
		return
	}

	go handler.relayEvents(client, eventChan)

	go func() {
		<-client.ctx.Done()
		handler.broadcaster.Unsubscribe(context.Background(), slug, client.id)
		client.Stop()
		handler.unregisterClient(client)
	}()

	handler.logger.Info().Str("client_id", client.id).Str("slug", slug).Msg("WebSocket client connected")
}

// Shutdown stops every connected client.
func (handler *WsHandler) Shutdown() {
	handler.clientsMu.Lock()
	defer handler.clientsMu.Unlock()

	for id, client := range handler.clients {
		client.Stop()
		delete(handler.clients, id)
	}
	handler.logger.Info().Msg("All WebSocket clients stopped")
}

func (handler *WsHandler) relayEvents(client *WsClient, eventChan chan outbound.Event) {
	for {
		select {
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if err := client.Send(NewServerMessage(event)); err != nil {
				handler.logger.Warn().Err(err).Str("client_id", client.id).Msg("Failed to relay event")
			}
		case <-client.ctx.Done():
			return
		}
	}
}

func (handler *WsHandler) registerClient(client *WsClient) {
	handler.clientsMu.Lock()
	defer handler.clientsMu.Unlock()
	handler.clients[client.id] = client
}

func (handler *WsHandler) unregisterClient(client *WsClient) {
	handler.clientsMu.Lock()
	defer handler.clientsMu.Unlock()
	delete(handler.clients, client.id)
}
