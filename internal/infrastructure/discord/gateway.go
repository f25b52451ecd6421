package discord

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"effettobot/internal/adapter/dispatch"
	"effettobot/pkg/logger"
)

// Gateway opcodes.
const (
	opDispatch       = 0
	opHeartbeat      = 1
	opIdentify       = 2
	opReconnect      = 7
	opInvalidSession = 9
	opHello          = 10
	opHeartbeatAck   = 11
)

// Gateway intents: guilds, guild messages and message content. Message
// content is needed for ticket-channel policing.
const gatewayIntents = 1<<0 | 1<<9 | 1<<15

const (
	interactionTimeout = 15 * time.Second
	reconnectBaseDelay = time.Second
	reconnectMaxDelay  = time.Minute
)

// Gateway maintains the realtime websocket session: it identifies,
// heartbeats, and feeds dispatch events to the Dispatcher. Dropped
// connections reconnect with exponential backoff.
type Gateway struct {
	url        string
	token      string
	rest       *RestClient
	dispatcher *dispatch.Dispatcher

	mu  sync.Mutex
	seq int64
}

func NewGateway(url, token string, rest *RestClient, dispatcher *dispatch.Dispatcher) *Gateway {
	return &Gateway{
		url:        url,
		token:      token,
		rest:       rest,
		dispatcher: dispatcher,
	}
}

// Run blocks until ctx is cancelled, reconnecting whenever the session
// drops.
func (g *Gateway) Run(ctx context.Context) error {
	delay := reconnectBaseDelay
	for {
		if err := g.session(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Gateway session ended: %v, reconnecting in %s", err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > reconnectMaxDelay {
			delay = reconnectMaxDelay
		}
	}
}

// session runs one connection lifetime: hello, identify, then the read
// loop until the connection fails.
func (g *Gateway) session(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, g.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	hello, err := g.read(conn)
	if err != nil {
		return err
	}
	var helloData struct {
		HeartbeatInterval int64 `json:"heartbeat_interval"`
	}
	if hello.Op != opHello {
		logger.Warn("Expected hello, got op %d", hello.Op)
	}
	if err := json.Unmarshal(hello.Data, &helloData); err != nil {
		return err
	}

	if err := g.identify(conn); err != nil {
		return err
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go g.heartbeatLoop(sessionCtx, conn, time.Duration(helloData.HeartbeatInterval)*time.Millisecond)

	for {
		payload, err := g.read(conn)
		if err != nil {
			return err
		}

		switch payload.Op {
		case opDispatch:
			if payload.Sequence != nil {
				g.mu.Lock()
				g.seq = *payload.Sequence
				g.mu.Unlock()
			}
			g.handleDispatch(ctx, payload)
		case opHeartbeat:
			g.sendHeartbeat(conn)
		case opReconnect, opInvalidSession:
			return websocket.ErrCloseSent
		case opHeartbeatAck:
		}
	}
}

func (g *Gateway) handleDispatch(ctx context.Context, payload *gatewayPayload) {
	switch payload.Type {
	case "READY":
		logger.Info("Gateway session ready")
	case "INTERACTION_CREATE":
		ic, id, token, err := decodeInteraction(payload.Data)
		if err != nil {
			logger.Error("Dropping interaction: %v", err)
			return
		}
		// Interactions run off the read loop so a slow workflow never
		// stalls heartbeating.
		go func() {
			ctx, cancel := context.WithTimeout(ctx, interactionTimeout)
			defer cancel()
			g.dispatcher.Dispatch(ctx, ic, g.rest.NewResponder(id, token))
		}()
	case "MESSAGE_CREATE":
		event, err := decodeMessage(payload.Data)
		if err != nil {
			logger.Error("Dropping message event: %v", err)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(ctx, interactionTimeout)
			defer cancel()
			g.dispatcher.HandleMessage(ctx, event.ChannelID, event.ID, event.Author.ID, event.Content, event.AuthorBot)
		}()
	}
}

func (g *Gateway) identify(conn *websocket.Conn) error {
	return g.write(conn, gatewayPayload{
		Op: opIdentify,
		Data: mustMarshal(map[string]any{
			"token":   g.token,
			"intents": gatewayIntents,
			"properties": map[string]string{
				"os":      "linux",
				"browser": "effettobot",
				"device":  "effettobot",
			},
		}),
	})
}

func (g *Gateway) heartbeatLoop(ctx context.Context, conn *websocket.Conn, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.sendHeartbeat(conn)
		}
	}
}

func (g *Gateway) sendHeartbeat(conn *websocket.Conn) {
	g.mu.Lock()
	seq := g.seq
	g.mu.Unlock()

	payload := gatewayPayload{Op: opHeartbeat}
	if seq > 0 {
		payload.Data = mustMarshal(seq)
	} else {
		payload.Data = json.RawMessage("null")
	}
	if err := g.write(conn, payload); err != nil {
		logger.Error("Heartbeat failed: %v", err)
	}
}

func (g *Gateway) read(conn *websocket.Conn) (*gatewayPayload, error) {
	var payload gatewayPayload
	if err := conn.ReadJSON(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (g *Gateway) write(conn *websocket.Conn, payload gatewayPayload) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return conn.WriteJSON(payload)
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
