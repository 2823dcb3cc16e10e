package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WebSocketClient is a thin publisher against the notification hub. The hub
// fans messages out to connected browsers; this side only ever publishes.
type WebSocketClient struct {
	conn              *websocket.Conn
	url               string
	token             string
	mu                sync.Mutex
	isConnected       bool
	reconnectInterval time.Duration
	stopChan          chan struct{}
	stopOnce          sync.Once
}

type OutgoingMessage struct {
	Action    string      `json:"action"`
	Channel   string      `json:"channel"`
	Data      interface{} `json:"data,omitempty"`
	MessageID string      `json:"messageId,omitempty"`
}

func NewWebSocketClient(url, token string) *WebSocketClient {
	return &WebSocketClient{
		url:               url,
		token:             token,
		reconnectInterval: 5 * time.Second,
		stopChan:          make(chan struct{}),
	}
}

func (c *WebSocketClient) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isConnected {
		return nil
	}

	wsURL := fmt.Sprintf("%s?token=%s", c.url, c.token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial websocket: %w", err)
	}

	c.conn = conn
	c.isConnected = true

	go c.readLoop()

	return nil
}

// AutoReconnect retries Connect until the client is closed. Run it in a
// goroutine when the initial Connect fails.
func (c *WebSocketClient) AutoReconnect() {
	ticker := time.NewTicker(c.reconnectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			if !c.IsConnected() {
				log.Println("Attempting websocket reconnect...")
				if err := c.Connect(); err != nil {
					log.Printf("Websocket reconnect failed: %v", err)
				} else {
					log.Println("Websocket reconnected")
				}
			}
		}
	}
}

// readLoop drains hub acks so the connection does not stall. A read error
// flips the client to disconnected and kicks off reconnection.
func (c *WebSocketClient) readLoop() {
	defer func() {
		c.mu.Lock()
		c.isConnected = false
		if c.conn != nil {
			c.conn.Close()
		}
		c.mu.Unlock()
		select {
		case <-c.stopChan:
		default:
			log.Println("Websocket connection closed, will reconnect...")
			go c.AutoReconnect()
		}
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// PublishAsync sends without waiting for a hub acknowledgement.
func (c *WebSocketClient) PublishAsync(channel string, data interface{}) error {
	if !c.IsConnected() {
		return fmt.Errorf("websocket not connected")
	}

	msg := OutgoingMessage{
		Action:    "publish",
		Channel:   channel,
		Data:      data,
		MessageID: uuid.New().String(),
	}

	c.mu.Lock()
	err := c.conn.WriteJSON(msg)
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}

	return nil
}

func (c *WebSocketClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isConnected
}

func (c *WebSocketClient) Close() error {
	c.stopOnce.Do(func() { close(c.stopChan) })
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
