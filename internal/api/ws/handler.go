package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/polysolve/internal/api/middleware"
	"github.com/GriffinCanCode/polysolve/internal/format"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/logging"
	"github.com/GriffinCanCode/polysolve/internal/service"
	"github.com/GriffinCanCode/polysolve/internal/shared/id"
	"github.com/GriffinCanCode/polysolve/internal/shared/utils"
	"github.com/GriffinCanCode/polysolve/internal/types"
)

// DefaultSolveTimeout bounds one solve on a stream
const DefaultSolveTimeout = 10 * time.Second

// Message is a client request on the stream
type Message struct {
	Type     string                 `json:"type"`
	ID       string                 `json:"id,omitempty"`
	Equation string                 `json:"equation,omitempty"`
	ToolID   string                 `json:"tool_id,omitempty"`
	Params   map[string]interface{} `json:"params,omitempty"`
	Format   string                 `json:"format,omitempty"`
}

// Reply is a server message on the stream
type Reply struct {
	Type      string        `json:"type"`
	ID        string        `json:"id,omitempty"`
	ToolID    string        `json:"tool_id,omitempty"`
	Result    *types.Result `json:"result,omitempty"`
	Message   string        `json:"message,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

// Handler manages WebSocket connections
type Handler struct {
	registry *service.Registry
	logger   *logging.Logger
	upgrader websocket.Upgrader
	timeout  time.Duration
}

// NewHandler creates a new WebSocket handler. checkOrigin may be nil to
// accept any origin.
func NewHandler(registry *service.Registry, logger *logging.Logger, checkOrigin func(r *http.Request) bool) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Handler{
		registry: registry,
		logger:   logger,
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
		timeout:  DefaultSolveTimeout,
	}
}

// HandleConnection upgrades the request and serves messages until the
// client disconnects. Messages on one connection are handled in order.
func (h *Handler) HandleConnection(c *gin.Context) {
	logger := h.logger.WithRequest(middleware.GetRequestID(c))

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	reqCtx := c.Request.Context()

	h.send(conn, Reply{Type: "system", Message: "connected"})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("websocket read failed", zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case "solve":
			h.handleSolve(reqCtx, conn, msg)
		case "execute":
			h.handleExecute(reqCtx, conn, msg)
		case "ping":
			h.send(conn, Reply{Type: "pong", ID: msg.ID})
		default:
			h.sendError(conn, msg.ID, "unknown message type")
		}
	}
}

func (h *Handler) handleSolve(reqCtx context.Context, conn *websocket.Conn, msg Message) {
	if err := utils.ValidateEquation(msg.Equation, "equation"); err != nil {
		h.sendError(conn, msg.ID, err.Error())
		return
	}
	msg.ToolID = "math.solve.equation"
	msg.Params = map[string]interface{}{"equation": msg.Equation}
	h.run(reqCtx, conn, msg)
}

func (h *Handler) handleExecute(reqCtx context.Context, conn *websocket.Conn, msg Message) {
	if err := utils.ValidateToolID(msg.ToolID, "tool_id", true); err != nil {
		h.sendError(conn, msg.ID, err.Error())
		return
	}
	if err := utils.ValidateParams(msg.Params); err != nil {
		h.sendError(conn, msg.ID, err.Error())
		return
	}
	h.run(reqCtx, conn, msg)
}

func (h *Handler) run(reqCtx context.Context, conn *websocket.Conn, msg Message) {
	if msg.Format != "" {
		if _, err := format.ParseStyle(msg.Format); err != nil {
			h.sendError(conn, msg.ID, err.Error())
			return
		}
	}
	if msg.ID == "" {
		msg.ID = id.NewSolveIDs(1)[0].String()
	}

	ctx, cancel := context.WithTimeout(reqCtx, h.timeout)
	defer cancel()

	appCtx := &types.Context{RequestID: msg.ID, Format: msg.Format}
	result, err := h.registry.Execute(ctx, msg.ToolID, msg.Params, appCtx)
	if err != nil {
		h.sendError(conn, msg.ID, err.Error())
		return
	}

	h.send(conn, Reply{Type: "result", ID: msg.ID, ToolID: msg.ToolID, Result: result})
}

func (h *Handler) send(conn *websocket.Conn, reply Reply) error {
	reply.Timestamp = time.Now().Unix()
	return conn.WriteJSON(reply)
}

func (h *Handler) sendError(conn *websocket.Conn, msgID, message string) error {
	return h.send(conn, Reply{Type: "error", ID: msgID, Message: message})
}
