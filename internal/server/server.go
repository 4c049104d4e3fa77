// Package server exposes the chat commands over websockets and serves map
// images over plain HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"contagion/internal/chat"
	"contagion/internal/game"
	"contagion/internal/logging"
	"contagion/internal/render"

	"github.com/gorilla/websocket"
)

const (
	maxMessageSize  = 1024
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server routes websocket commands to a chat bot.
type Server struct {
	bot      *chat.Bot
	games    *game.Manager
	scale    int
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// New constructs a Server. scale is the pixel size of a spot in /map images.
func New(bot *chat.Bot, games *game.Manager, scale int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		bot:    bot,
		games:  games,
		scale:  scale,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /map/{file}", s.handleMap)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" {
		http.Error(w, "user is required", http.StatusBadRequest)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Player"
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "user", user, "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)
	s.logger.Info("client connected", "user", user, "remote", r.RemoteAddr)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", "user", user, "error", err)
			}
			s.logger.Info("client disconnected", "user", user)
			return
		}
		reply, err := s.bot.Handle(r.Context(), chat.Message{User: user, Name: name, Text: string(data)})
		if errors.Is(err, chat.ErrNotCommand) {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("websocket write failed", "user", user, "error", err)
			return
		}
	}
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	user, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok || user == "" {
		http.NotFound(w, r)
		return
	}
	sess, err := s.games.Show(r.Context(), user)
	if errors.Is(err, game.ErrNoGame) {
		http.Error(w, "no game", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	img, err := render.PNG(sess.Map(), s.scale)
	if err != nil {
		s.logger.Error("render failed", "user", user, "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(img)
}
