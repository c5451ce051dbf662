package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"gomoku/engine"
)

type StatusResponse struct {
	Event       string            `json:"event,omitempty"`
	Started     bool              `json:"started"`
	Settings    GameSettingsDTO   `json:"settings"`
	BoardSize   int               `json:"board_size"`
	Board       [][]int           `json:"board"`
	NextPlayer  int               `json:"next_player"`
	Winner      int               `json:"winner"`
	Status      string            `json:"status"`
	History     []historyEntryDTO `json:"history"`
	WinningLine []engine.Move     `json:"winning_line"`
	UndosLeft   int               `json:"undos_left"`
	AiThinking  bool              `json:"ai_thinking"`
	MoveCount   int               `json:"move_count"`
	Hash        string            `json:"hash"`
}

type GameSettingsDTO struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
}

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type historyEntryDTO struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Player int  `json:"player"`
	IsAi   bool `json:"is_ai"`
}

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	flag.Parse()

	cfg, err := LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("[backend] %v", err)
	}
	configStore := NewConfigStore(cfg.Engine)
	hub := NewHub()
	controller := NewGameController(configStore, ControllerOptions{
		Delay:          cfg.AIDelay(),
		LogSearchStats: cfg.LogSearchStats,
		Publish:        hub.PublishStatus,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(controller, configStore, hub, cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[backend] listening on %s (ai delay %s)", cfg.Addr, cfg.AIDelay())
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[backend] forced close failed: %v", closeErr)
		}
	}
	cancel()
	if runErr != nil {
		log.Printf("[backend] exiting after server error: %v", runErr)
		os.Exit(1)
	}
}

func newRouter(controller *GameController, configStore *ConfigStore, hub *Hub, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	broadcast := hub.PublishStatus

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controller.Status())
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload GameSettingsDTO
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings, err := settingsFromDTO(payload)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		status := controller.StartGame(settings)
		broadcast(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		status := controller.Stop()
		broadcast(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if _, err := controller.ApplyHumanMove(engine.Move{X: payload.X, Y: payload.Y}); err != nil {
			writeJSON(w, statusCodeFor(err), map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, controller.Status())
	})

	r.Post("/api/undo", func(w http.ResponseWriter, r *http.Request) {
		if err := controller.Undo(); err != nil {
			writeJSON(w, statusCodeFor(err), map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, controller.Status())
	})

	r.Post("/api/restart", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controller.Restart())
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, configStore.Get())
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		config := configStore.Get()
		if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		writeJSON(w, http.StatusOK, configStore.Update(config))
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, allowedOrigins, w, r)
	})
	return r
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrUndoRefused):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInvalidMove):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func serveWS(hub *Hub, controller *GameController, allowedOrigins []string, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool {
		return originAllowed(allowedOrigins, r.Header.Get("Origin"))
	}}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)
	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controller.Status())})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send, wsIdlePingInterval); err != nil {
			log.Printf("[backend] websocket write: %v", err)
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controller.Status())})
		}
	}
}

// originAllowed applies the CORS origin list to websocket handshakes. Requests
// without an Origin header come from non-browser clients and are accepted.
func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, candidate := range allowed {
		if candidate == "*" || strings.EqualFold(candidate, origin) {
			return true
		}
	}
	return false
}

func settingsFromDTO(dto GameSettingsDTO) (engine.GameSettings, error) {
	mode, err := engine.ParseGameMode(dto.Mode)
	if err != nil {
		return engine.GameSettings{}, err
	}
	difficulty, err := engine.ParseDifficulty(dto.Difficulty)
	if err != nil {
		return engine.GameSettings{}, err
	}
	return engine.GameSettings{Mode: mode, Difficulty: difficulty}, nil
}

func statusFromSnapshot(snap engine.Snapshot, started bool) StatusResponse {
	history := make([]historyEntryDTO, 0, len(snap.History))
	for _, entry := range snap.History {
		history = append(history, historyEntryToDTO(entry))
	}
	winner := 0
	if snap.HasWinner {
		winner = playerToInt(snap.Winner)
	}
	status := snap.Status.String()
	if !started {
		status = "not_started"
	}
	return StatusResponse{
		Started: started,
		Settings: GameSettingsDTO{
			Mode:       snap.Settings.Mode.String(),
			Difficulty: snap.Settings.Difficulty.String(),
		},
		BoardSize:   engine.BoardSize,
		Board:       boardToSlice(&snap.Board),
		NextPlayer:  playerToInt(snap.ToMove),
		Winner:      winner,
		Status:      status,
		History:     history,
		WinningLine: append([]engine.Move{}, snap.WinningLine...),
		UndosLeft:   snap.UndosLeft,
		AiThinking:  snap.Thinking,
		MoveCount:   len(snap.History),
		Hash:        fmt.Sprintf("0x%016x", snap.Hash),
	}
}

func boardToSlice(board *engine.Board) [][]int {
	size := board.Size()
	rows := make([][]int, size)
	for y := 0; y < size; y++ {
		rows[y] = make([]int, size)
		for x := 0; x < size; x++ {
			rows[y][x] = cellToInt(board.At(x, y))
		}
	}
	return rows
}

func cellToInt(cell engine.Cell) int {
	switch cell {
	case engine.CellBlack:
		return 1
	case engine.CellWhite:
		return 2
	default:
		return 0
	}
}

func playerToInt(player engine.PlayerColor) int {
	if player == engine.PlayerBlack {
		return 1
	}
	return 2
}

func historyEntryToDTO(entry engine.HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		X:      entry.Move.X,
		Y:      entry.Move.Y,
		Player: playerToInt(entry.Player),
		IsAi:   entry.IsAi,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[backend] write json: %v", err)
	}
}
