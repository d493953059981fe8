package detector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"BatiDetect/internal/entity"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type wsResponse struct {
	analyzeResponse
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

type websocketDetector struct {
	url          string
	conn         *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewWebsocket returns a client that dials lazily; the first Analyze call
// opens the connection.
func NewWebsocket(url string) IDetector {
	return &websocketDetector{
		url:          url,
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}
}

func (c *websocketDetector) Name() string {
	return BackendWebsocket
}

func (c *websocketDetector) connect(ctx context.Context) (*websocket.Conn, error) {
	if c.conn != nil {
		return c.conn, nil
	}

	logrus.Infof("Connecting to detection backend at %s", c.url)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrBackendUnavailable, c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		if err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout)); err != nil {
			logrus.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return conn, nil
}

func (c *websocketDetector) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			logrus.Warnf("Ping to detection backend failed, dropping connection: %v", err)
			c.dropLocked()
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

func (c *websocketDetector) dropLocked() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *websocketDetector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropLocked()
}

// Analyze runs one request/response exchange. Exchanges are serialised on
// the single connection. A kept connection the backend has since closed is
// redialled once before the call fails.
func (c *websocketDetector) Analyze(ctx context.Context, point entity.Coordinate) (*entity.DetectionResult, error) {
	if !point.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCoordinate, point)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	reused := c.conn != nil
	message, err := c.exchange(ctx, point)
	if err != nil && reused && ctx.Err() == nil && !isTimeout(err) {
		logrus.Debugf("Detection backend connection went stale, redialling: %v", err)
		message, err = c.exchange(ctx, point)
	}
	if err != nil {
		return nil, err
	}

	var resp wsResponse
	if err := jsoniter.Unmarshal(message, &resp); err != nil {
		return nil, fmt.Errorf("decode backend message: %w", err)
	}

	switch resp.Code {
	case "":
	case "no_coverage":
		return nil, ErrNoCoverage
	case "invalid_coordinate":
		return nil, fmt.Errorf("%w: %s", ErrInvalidCoordinate, resp.Error)
	default:
		return nil, fmt.Errorf("detection backend error %s: %s", resp.Code, resp.Error)
	}

	text := resp.Message
	if text == "" {
		text = resultMessage(resp.Buildings, resp.Illegal, point)
	}

	return &entity.DetectionResult{
		Message:   text,
		Buildings: resp.Buildings,
		Illegal:   resp.Illegal,
		Backend:   BackendWebsocket,
		Point:     point,
	}, nil
}

func (c *websocketDetector) exchange(ctx context.Context, point entity.Coordinate) ([]byte, error) {
	conn, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	writeDeadline := time.Now().Add(c.writeTimeout)
	readDeadline := time.Now().Add(c.readTimeout)
	if deadline, ok := ctx.Deadline(); ok && deadline.Before(readDeadline) {
		readDeadline = deadline
	}

	conn.SetWriteDeadline(writeDeadline)
	if err := conn.WriteJSON(analyzeRequest{Latitude: point.Latitude, Longitude: point.Longitude}); err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("%w: send: %w", ErrBackendUnavailable, err)
	}

	conn.SetReadDeadline(readDeadline)
	_, message, err := conn.ReadMessage()
	if err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("%w: read: %w", ErrBackendUnavailable, err)
	}
	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	return message, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
