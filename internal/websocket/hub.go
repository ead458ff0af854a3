// Package websocket streams processing progress to browsers watching a
// video. With Redis configured, events go through pub/sub so any replica can
// publish to a client connected to any other.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"svl-backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	channelPrefix  = "svl_progress:"
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// client serializes writes; gorilla connections allow one writer at a time.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

type Hub struct {
	mu          sync.RWMutex
	connections map[string][]*client
	redisClient *redis.Client
	cancelFuncs map[string]context.CancelFunc
	logger      *slog.Logger
}

// NewHub returns a hub. redisClient may be nil, in which case events only
// reach clients connected to this process.
func NewHub(redisClient *redis.Client, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		connections: make(map[string][]*client),
		redisClient: redisClient,
		cancelFuncs: make(map[string]context.CancelFunc),
		logger:      logger,
	}
}

// HandleWebSocket upgrades GET /api/ws?video_id=... and streams that
// video's events until the client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		http.Error(w, "video_id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn}
	h.registerConnection(videoID, c)

	// Reads only detect the disconnect; clients send nothing meaningful.
	go func() {
		defer h.unregisterConnection(videoID, c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) registerConnection(videoID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[videoID] = append(h.connections[videoID], c)

	// Subscribe on the first connection for this video
	if h.redisClient != nil && len(h.connections[videoID]) == 1 {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancelFuncs[videoID] = cancel
		go h.subscribeToPubSub(ctx, videoID)
	}

	h.logger.Debug("websocket connected", "video_id", videoID, "total", len(h.connections[videoID]))
}

func (h *Hub) unregisterConnection(videoID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.conn.Close()

	conns := h.connections[videoID]
	for i, existing := range conns {
		if existing == c {
			h.connections[videoID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	if len(h.connections[videoID]) == 0 {
		delete(h.connections, videoID)
		if cancel, ok := h.cancelFuncs[videoID]; ok {
			cancel()
			delete(h.cancelFuncs, videoID)
		}
	}

	h.logger.Debug("websocket disconnected", "video_id", videoID)
}

func (h *Hub) subscribeToPubSub(ctx context.Context, videoID string) {
	pubsub := h.redisClient.Subscribe(ctx, channelPrefix+videoID)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast(videoID, []byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(videoID string, data []byte) {
	h.mu.RLock()
	targets := append([]*client(nil), h.connections[videoID]...)
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(data); err != nil {
			h.logger.Debug("websocket write failed", "video_id", videoID, "error", err)
		}
	}
}

// Publish sends msg to everyone watching videoID.
func (h *Hub) Publish(ctx context.Context, videoID string, msg models.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to encode websocket message", "type", msg.Type, "error", err)
		return
	}

	if h.redisClient != nil {
		err := h.redisClient.Publish(ctx, channelPrefix+videoID, string(data)).Err()
		if err == nil {
			return
		}
		h.logger.Warn("redis publish failed, delivering locally", "video_id", videoID, "error", err)
	}
	h.broadcast(videoID, data)
}

// Watchers is the number of open connections for videoID.
func (h *Hub) Watchers(videoID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[videoID])
}
