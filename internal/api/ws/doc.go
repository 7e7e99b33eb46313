// Package ws provides a WebSocket stream for solving equations one
// message at a time over a single connection.
//
// Message Types (Client → Server):
//   - solve: equation text, optional id and format
//   - execute: any registered tool by tool_id with params
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - system: connection established
//   - result: tool result, echoing the request id
//   - error: malformed message or unknown service
//   - pong: reply to ping
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, logger, nil)
//	router.GET("/stream", handler.HandleConnection)
package ws
