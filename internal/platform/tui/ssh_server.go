package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/redlight/internal/config"
	"github.com/vovakirdan/redlight/internal/core"
	"github.com/vovakirdan/redlight/internal/registry"
	"github.com/vovakirdan/redlight/internal/session"
	"github.com/vovakirdan/redlight/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.redlight/host_key.
	HostKeyPath string

	// DBPath is the path to the trace database. Empty disables recording.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxPlayers caps concurrent sessions; 0 means unlimited.
	MaxPlayers int

	// Source is the motion source ID each player gets.
	Source string

	// TickRate is the per-session tick rate in Hz.
	TickRate int

	// Game is the game config shared by every session.
	Game config.GameConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.redlight/traces.db",
		IdleTimeout: 30 * time.Minute,
		MaxPlayers:  32,
		Source:      "keyboard",
		TickRate:    core.DefaultConfig().TickRate,
		Game:        config.DefaultGameConfig(),
	}
}

// gameKey is the ssh.Context key holding a player's session.
type gameKey struct{}

// SSHServer wraps a Wish SSH server that gives each connection its own game.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	tracker *session.Tracker
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "redlight-ssh",
	})

	if !registry.Exists(cfg.Source) {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownSource, cfg.Source)
	}

	srv := &SSHServer{
		config:  cfg,
		tracker: session.NewTracker(cfg.MaxPlayers),
		logger:  logger,
	}

	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open trace database, recording disabled", "error", err)
		} else {
			srv.store = store
		}
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".redlight", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.playerMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if srv.store != nil {
			srv.store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// playerMiddleware admits the player, creates their game session and
// finishes its recording when the connection ends.
func (s *SSHServer) playerMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		player, err := s.tracker.Add(sshSession.User(), sshSession.RemoteAddr().String())
		if err != nil {
			s.logger.Warn("connection rejected", "user", sshSession.User(), "error", err)
			wish.Fatalln(sshSession, "redlight: server is full, try again later")
			return
		}
		defer s.tracker.Remove(player.ID)

		game, err := s.newGame(player)
		if err != nil {
			s.logger.Error("cannot start game", "user", player.User, "error", err)
			wish.Fatalln(sshSession, "redlight: cannot start game")
			return
		}
		sshSession.Context().SetValue(gameKey{}, game)

		next(sshSession)

		outcome := "disconnected"
		if game.Done() {
			outcome = "quit"
		}
		if err := game.Close(outcome); err != nil {
			s.logger.Warn("cannot finish trace", "user", player.User, "error", err)
		}
	}
}

// newGame builds a session for one player.
func (s *SSHServer) newGame(p session.Player) (*session.Session, error) {
	seed := time.Now().UnixNano()
	src, err := registry.Create(s.config.Source, registry.Options{Seed: seed})
	if err != nil {
		return nil, err
	}

	logger := s.logger.With("user", p.User, "player", p.ID[:8])

	var rec *session.Recorder
	if s.store != nil {
		tickMS := core.RuntimeConfig{TickRate: s.config.TickRate}.TickMS()
		rec, err = session.NewRecorder(s.store, src.Name(), seed, tickMS, s.config.Game, logger)
		if err != nil {
			logger.Warn("recording disabled", "error", err)
			rec = nil
		}
	}

	return session.New(session.Options{
		Config:   s.config.Game,
		Seed:     seed,
		Source:   src,
		Recorder: rec,
		Logger:   logger,
	}), nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	game, ok := sshSession.Context().Value(gameKey{}).(*session.Session)
	if !ok {
		s.logger.Error("session missing from connection context", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	return NewModel(game, cfg), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"players", s.tracker.Count(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server",
		"address", s.config.Address,
		"source", s.config.Source,
		"max_players", s.config.MaxPlayers,
	)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...", "players", s.tracker.Count())
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
