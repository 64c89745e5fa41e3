package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/driftboard/driftboard-backend/responses"
	"github.com/driftboard/driftboard-backend/utils"
)

var upgrader = websocket.Upgrader{
    ReadBufferSize:  1024,
    WriteBufferSize: 1024,
    CheckOrigin:     func(r *http.Request) bool { return true },
}

// WsHandler upgrades the request and runs the connection's lifecycle:
// register, announce the join, relay inbound frames, and on any close or
// read error deregister and announce the departure. The client id is an
// opaque string taken from the path; the realtime endpoint does not
// authenticate.
func (api *API) WsHandler(w http.ResponseWriter, r *http.Request) {
    vars := mux.Vars(r)
    clientID := vars["clientID"]
    if clientID == "" {
        utils.HandleError(w, responses.BadRequestError{Msg: "Missing client id."})
        return
    }

    conn, err := upgrader.Upgrade(w, r, nil)
    if err != nil {
        log.Error().Err(err).Msg("Websocket upgrade error")
        return
    }

    connection := &Connection{send: make(chan []byte, 256), ws: conn, clientID: clientID}
    api.Hub.Register(connection)

    // Direct reply: tell the newcomer who is already here.
    roster := "present: " + strings.Join(api.Hub.ClientIDs(), ", ")
    if err := api.Hub.SendTo(connection, []byte(roster)); err != nil {
        log.Warn().Err(err).Str("client_id", clientID).Msg("Failed to send roster")
    }

    api.Hub.Broadcast([]byte(clientID + " joined"))
    log.Info().Str("client_id", clientID).Msg("Client connected")

    go connection.writePump()
    connection.readPump(api.Hub)
}

// readPump relays inbound text frames into the hub until the connection
// closes for any reason, then tears the connection down. Deregistration
// happens before the departure announcement so the departed connection is
// not contacted again.
func (c *Connection) readPump(hub *Hub) {
    defer func() {
        hub.Unregister(c)
        c.ws.Close()
        hub.Broadcast([]byte(c.clientID + " left"))
        log.Info().Str("client_id", c.clientID).Msg("Client disconnected")
    }()

    for {
        _, message, err := c.ws.ReadMessage()
        if err != nil {
            if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
                log.Warn().Err(err).Str("client_id", c.clientID).Msg("Websocket read error")
            }
            break
        }
        hub.Broadcast([]byte(c.clientID + ": " + string(message)))
    }
}

func (c *Connection) writePump() {
    defer func() {
        c.ws.Close()
    }()

    for message := range c.send {
        if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
            log.Warn().Err(err).Str("client_id", c.clientID).Msg("Websocket write error")
            break
        }
    }
}
