package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/docchat/docchat/internal/client"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type     string `json:"type"` // "ask"
	Question string `json:"question"`
	Document string `json:"document,omitempty"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type   string             `json:"type"` // "result" or "error"
	Error  string             `json:"error,omitempty"`
	Result *client.ChatResult `json:"result,omitempty"`
}

// handleWebSocket serves the push-style chat surface: one "ask"
// message in, one result or error out, connection held open for the
// next question.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWSError(conn, "invalid message format")
			continue
		}
		if req.Type != "ask" {
			s.sendWSError(conn, "unknown message type: "+req.Type)
			continue
		}

		result, _, errMsg := s.answer(r.Context(), chatRequest{
			Question: req.Question,
			Document: req.Document,
		})
		if errMsg != "" {
			s.sendWSError(conn, errMsg)
			continue
		}

		if err := conn.WriteJSON(wsResponse{Type: "result", Result: result}); err != nil {
			log.Printf("server: websocket write: %v", err)
			return
		}
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(wsResponse{Type: "error", Error: message}); err != nil {
		log.Printf("server: websocket write error: %v", err)
	}
}
