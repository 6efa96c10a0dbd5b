package server

import (
	"net/http"
	"slices"
	"sync"

	"quizboard/internal/lobby"
	qr "quizboard/internal/qrcode"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	Rooms *lobby.Manager

	mu       sync.Mutex
	hubs     map[string]*Hub
	upgrader websocket.Upgrader
	limit    rate.Limit
	burst    int
}

func NewHandlers(rooms *lobby.Manager, allowedOrigins []string, limit float64, burst int) *Handlers {
	h := &Handlers{
		Rooms: rooms,
		hubs:  make(map[string]*Hub),
		limit: rate.Limit(limit),
		burst: burst,
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// hubFor returns the running hub of a room, creating room and hub on
// first use.
func (h *Handlers) hubFor(roomID string) *Hub {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, created := h.Rooms.GetOrCreate(roomID)
	if created {
		log.Info().Str("room", room.ID).Msg("room created")
	}
	hub, ok := h.hubs[room.ID]
	if !ok {
		hub = NewHub(room, h.release)
		h.hubs[room.ID] = hub
		go hub.Run()
	}
	return hub
}

// release forgets an idle hub and its room.
func (h *Handlers) release(hub *Hub) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hubs[hub.room.ID] == hub {
		delete(h.hubs, hub.room.ID)
		h.Rooms.Delete(hub.room.ID)
	}
}

// StopHubs stops every running hub.
func (h *Handlers) StopHubs() {
	h.mu.Lock()
	hubs := make([]*Hub, 0, len(h.hubs))
	for _, hub := range h.hubs {
		hubs = append(hubs, hub)
	}
	h.hubs = make(map[string]*Hub)
	h.mu.Unlock()

	for _, hub := range hubs {
		hub.Stop()
		<-hub.Done()
	}
}

func (h *Handlers) HandleHealth(ctx *gin.Context) {
	ctx.String(http.StatusOK, "healthy")
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(ctx *gin.Context) {
	ctx.String(http.StatusOK, GeneratePlayerID())
}

// HandleCreateRoom creates a room under a fresh code.
func (h *Handlers) HandleCreateRoom(ctx *gin.Context) {
	room := h.Rooms.Create()
	log.Info().Str("room", room.ID).Msg("room created")
	ctx.JSON(http.StatusCreated, room.Summary())
}

func (h *Handlers) HandleListRooms(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.Rooms.List())
}

// HandleRoom returns the public snapshot of one room.
func (h *Handlers) HandleRoom(ctx *gin.Context) {
	room := h.Rooms.Get(ctx.Param("room"))
	if room == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	ctx.JSON(http.StatusOK, room.Snapshot())
}

// HandleQR generates a QR code PNG for joining the room.
func (h *Handlers) HandleQR(ctx *gin.Context) {
	roomID := lobby.NormalizeID(ctx.Query("room"))
	if roomID == "" {
		ctx.String(http.StatusBadRequest, "missing room parameter")
		return
	}
	link := qr.JoinURL(ctx.Request.Host, roomID, ctx.Request.TLS != nil)
	png, err := qr.Generate(link)
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("qr generation failed")
		ctx.String(http.StatusInternalServerError, "QR generation failed")
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}

// HandleWS upgrades to a WebSocket bound to a room. Connections without a
// player id are read-only displays.
func (h *Handlers) HandleWS(ctx *gin.Context) {
	roomID := lobby.NormalizeID(ctx.Query("room"))
	playerID := ctx.Query("player")
	if roomID == "" {
		ctx.String(http.StatusBadRequest, "missing room parameter")
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("room", roomID).Msg("ws upgrade error")
		return
	}

	for {
		hub := h.hubFor(roomID)
		client := NewClient(hub, conn, playerID, rate.NewLimiter(h.limit, h.burst))
		select {
		case hub.register <- client:
			go client.WritePump()
			go client.ReadPump()
			return
		case <-hub.done:
			// hub went idle between lookup and register
		}
	}
}
