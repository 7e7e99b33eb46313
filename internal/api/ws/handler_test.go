package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/polysolve/internal/providers/math"
	"github.com/GriffinCanCode/polysolve/internal/service"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(math.NewProvider(math.DefaultOptions())))

	router := gin.New()
	router.GET("/stream", NewHandler(registry, nil, nil).HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/stream", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	hello := read(t, conn)
	require.Equal(t, "system", hello["type"])
	return conn
}

func read(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var reply map[string]interface{}
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func roots(t *testing.T, reply map[string]interface{}) []string {
	t.Helper()
	result := reply["result"].(map[string]interface{})
	require.Equal(t, true, result["success"], "result: %v", result)
	list := result["data"].(map[string]interface{})["roots"].([]interface{})
	out := make([]string, len(list))
	for i, r := range list {
		out[i], _ = r.(map[string]interface{})["text"].(string)
	}
	return out
}

func TestStreamSolve(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteJSON(Message{Type: "solve", ID: "a", Equation: "x^2 - 5x + 6 = 0"}))
	reply := read(t, conn)
	assert.Equal(t, "result", reply["type"])
	assert.Equal(t, "a", reply["id"])
	assert.Equal(t, []string{"3", "2"}, roots(t, reply))

	require.NoError(t, conn.WriteJSON(Message{Type: "solve", ID: "b", Equation: "x^2 + 1 = 0", Format: "unicode"}))
	reply = read(t, conn)
	assert.Equal(t, "b", reply["id"])
	assert.Equal(t, []string{"i", "−i"}, roots(t, reply))
}

func TestStreamExecute(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteJSON(Message{
		Type:   "execute",
		ToolID: "math.exact.multiply",
		Params: map[string]interface{}{"a": "2/3", "b": "3/4"},
	}))
	reply := read(t, conn)
	require.Equal(t, "result", reply["type"])
	assert.NotEmpty(t, reply["id"])
	value := reply["result"].(map[string]interface{})["data"].(map[string]interface{})["result"].(map[string]interface{})
	assert.Equal(t, "1/2", value["text"])
}

func TestStreamErrors(t *testing.T) {
	conn := dial(t)

	t.Run("unknown type", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(Message{Type: "chat", ID: "x"}))
		reply := read(t, conn)
		assert.Equal(t, "error", reply["type"])
		assert.Equal(t, "x", reply["id"])
	})

	t.Run("blank equation", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(Message{Type: "solve", Equation: " "}))
		assert.Equal(t, "error", read(t, conn)["type"])
	})

	t.Run("unknown service", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(Message{Type: "execute", ToolID: "geometry.area", Params: map[string]interface{}{}}))
		reply := read(t, conn)
		assert.Equal(t, "error", reply["type"])
		assert.Contains(t, reply["message"], "service not found")
	})

	t.Run("bad format", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(Message{Type: "solve", Equation: "x = 1", Format: "html"}))
		assert.Equal(t, "error", read(t, conn)["type"])
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(Message{Type: "ping", ID: "p"}))
		reply := read(t, conn)
		assert.Equal(t, "pong", reply["type"])
		assert.Equal(t, "p", reply["id"])
	})
}
