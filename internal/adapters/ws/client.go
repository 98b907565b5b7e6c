package ws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"curbside-auctions/internal/config"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// WsClient is one connected watcher of an auction page.
type WsClient struct {
	id         string
	slug       string
	conn       *websocket.Conn
	sendChan   chan *ServerMessage
	ctx        context.Context
	cancel     context.CancelFunc
	workerPool *pond.WorkerPool
	stopped    bool
	mu         sync.Mutex
	logger     zerolog.Logger
}

type WsClientParams struct {
	Slug   string
	Conn   *websocket.Conn
	Logger zerolog.Logger
}

// NewClient creates a new WebSocket client for an auction page.
func NewClient(params WsClientParams) *WsClient {
	ctx, cancel := context.WithCancel(context.Background())

	pool := pond.New(
		config.WSMaxWorkers,
		config.WSMaxCapacity,
		pond.Context(ctx),
		pond.Strategy(pond.Balanced()),
	)

	id := uuid.New().String()
	return &WsClient{
		id:         id,
		slug:       params.Slug,
		conn:       params.Conn,
		sendChan:   make(chan *ServerMessage, 100),
		ctx:        ctx,
		cancel:     cancel,
		workerPool: pool,
		logger:     params.Logger.With().Str("client_id", id).Str("slug", params.Slug).Logger(),
	}
}

// Start launches the client's read and write loops.
func (client *WsClient) Start() {
	go client.messageSender()
	go client.messageReceiver()
}

// Stop tears the connection down. Safe to call more than once.
func (client *WsClient) Stop() {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.stopped {
		return
	}
	client.stopped = true

	client.cancel()
	client.conn.Close()
	close(client.sendChan)
	client.workerPool.Stop()
}

// Send queues a message for the client. Returns an error when the client is
// stopped or its queue stays full.
func (client *WsClient) Send(msg *ServerMessage) error {
	client.mu.Lock()
	if client.stopped {
		client.mu.Unlock()
		return fmt.Errorf("client is stopped")
	}
	client.mu.Unlock()

	select {
	case client.sendChan <- msg:
		return nil
	case <-time.After(100 * time.Millisecond):
		return fmt.Errorf("client send channel is full")
	}
}

func (client *WsClient) messageSender() {
	for {
		select {
		case msg, ok := <-client.sendChan:
			if !ok {
				return
			}
			client.workerPool.Submit(func() {
				if err := client.conn.WriteJSON(msg); err != nil {
					client.logger.Error().Err(err).Msg("Failed to send message to client")
					client.cancel()
				}
			})
		case <-client.ctx.Done():
			return
		}
	}
}

// messageReceiver drains the connection so close frames are noticed.
// Watchers are read-only; bids arrive over the HTTP API.
func (client *WsClient) messageReceiver() {
	for {
		select {
		case <-client.ctx.Done():
			return
		default:
			if _, _, err := client.conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					client.logger.Error().Err(err).Msg("WebSocket read error")
				} else {
					client.logger.Info().Str("error", err.Error()).Msg("WebSocket connection closed")
				}
				client.cancel()
				return
			}
		}
	}
}
