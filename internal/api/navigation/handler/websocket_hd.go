package navigationHandler

import (
	"context"
	"net/http"
	"time"

	"BatiDetect/internal/api/navigation"
	"BatiDetect/internal/middleware"
	contextPkg "BatiDetect/pkg/context"
	"BatiDetect/pkg/log"
	"BatiDetect/pkg/response"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
)

const (
	wsReadTimeout  = 5 * time.Minute
	wsWriteTimeout = 10 * time.Second
	wsActionTime   = 30 * time.Second
)

// handleSessionWebSocket runs the same interaction cycle as the HTTP routes:
// one JSON action in, one JSON view out.
func (h *NavigationHandler) handleSessionWebSocket(c *websocket.Conn) {
	sessionID, _ := c.Locals(middleware.SessionIDKey).(string)
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	base := contextPkg.WithSessionID(contextPkg.WithRequestID(context.Background(), requestID), sessionID)

	logger := log.WithRequestID(h.log, base)
	logger.Info("Session WebSocket client connected")
	defer logger.Info("Session WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			logger.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			logger.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Errorf("Session WebSocket error: %v", err)
			}
			break
		}

		if messageType != websocket.TextMessage {
			logger.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		resp := h.handleSessionMessage(base, sessionID, message)

		if err := c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			logger.Errorf("Error setting write deadline: %v", err)
			break
		}

		payload, err := jsoniter.Marshal(resp)
		if err != nil {
			logger.Errorf("Error encoding view: %v", err)
			break
		}
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Errorf("Error writing view: %v", err)
			break
		}
	}
}

// handleSessionMessage answers rejections with the same French text the HTML
// pages show.
func (h *NavigationHandler) handleSessionMessage(base context.Context, sessionID string, message []byte) navigation.ViewResponse {
	ctx, cancel := context.WithTimeout(base, wsActionTime)
	defer cancel()

	var req navigation.ActionRequest
	if err := jsoniter.Unmarshal(message, &req); err != nil {
		return navigation.ViewResponse{Error: userMessage(navigation.ErrInvalidAction)}
	}

	action, err := h.toAction(req)
	if err != nil {
		return navigation.ViewResponse{Error: userMessage(err)}
	}

	_, view, err := h.dispatch(ctx, sessionID, action)
	if err != nil && response.StatusOf(err, http.StatusInternalServerError) < http.StatusInternalServerError {
		return navigation.ViewResponse{Error: userMessage(err)}
	}
	if err != nil {
		traceID := log.ErrorWithTraceID(log.WithRequestID(h.log, ctx).WithFields(log.Fields{
			"action": action.Kind,
			"error":  err.Error(),
		}), "Session WebSocket action failed")
		return navigation.ViewResponse{Error: internalErrorMessage + " Référence : " + traceID}
	}

	return navigation.ViewResponse{Data: view}
}
