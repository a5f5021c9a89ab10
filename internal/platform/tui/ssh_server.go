package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.t2048/host_key.
	HostKeyPath string

	// DBPath is the path to the results database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxSessionsPerIP caps concurrent sessions from one address. 0 disables the cap.
	MaxSessionsPerIP int

	TickRate int
	Colors   bool
}

// SSHServerConfigFrom builds the server config from the loaded configuration.
func SSHServerConfigFrom(cfg config.Config) SSHServerConfig {
	return SSHServerConfig{
		Address:          cfg.Server.Address,
		HostKeyPath:      cfg.Server.HostKey,
		DBPath:           cfg.Storage.DBPath,
		IdleTimeout:      cfg.Server.IdleTimeout,
		MaxSessionsPerIP: cfg.Server.MaxSessionsPerIP,
		TickRate:         cfg.Game.TickRate,
		Colors:           cfg.Display.Colors,
	}
}

// SSHServer wraps a Wish SSH server that hands each session its own game.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	logger  *log.Logger
	limiter *ipLimiter
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}

	// Results are optional; the server keeps running without them.
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		logger:  logger,
		limiter: newIPLimiter(cfg.MaxSessionsPerIP),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = config.UserPath("host_key")
		if hostKeyPath == "" {
			return nil, errors.New("tui: cannot resolve home directory for host key")
		}
	}
	if hostKeyPath, err = config.ExpandHome(hostKeyPath); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: limiter, activeterm, logging, then the program.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			srv.limiter.middleware(logger),
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Colors:   s.config.Colors,
	}
	logger := s.logger.With("user", sess.User(), "remote", remoteIP(sess))

	return NewSessionModel(s.store, logger, cfg, ""), []tea.ProgramOption{tea.WithAltScreen()}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.Shutdown()
		return fmt.Errorf("tui: serve: %w", err)
	}
}

// Shutdown gracefully stops the server and closes the results database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// ipLimiter counts live sessions per remote IP.
type ipLimiter struct {
	mu     sync.Mutex
	limit  int
	counts map[string]int
}

func newIPLimiter(limit int) *ipLimiter {
	return &ipLimiter{limit: limit, counts: make(map[string]int)}
}

// acquire reserves a slot for ip and reports the new count, or false when full.
func (l *ipLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.limit > 0 && l.counts[ip] >= l.limit {
		return l.counts[ip], false
	}
	l.counts[ip]++
	return l.counts[ip], true
}

func (l *ipLimiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[ip]--
	if l.counts[ip] <= 0 {
		delete(l.counts, ip)
	}
}

func (l *ipLimiter) middleware(logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			ip := remoteIP(sess)

			count, ok := l.acquire(ip)
			if !ok {
				logger.Warn("connection denied: IP limit exceeded", "ip", ip, "limit", l.limit)
				fmt.Fprintf(sess, "Too many active connections from your IP (%d/%d). Please try again later.\r\n", count, l.limit)
				sess.Close()
				return
			}
			defer l.release(ip)

			logger.Info("session started", "user", sess.User(), "ip", ip, "count", count)
			next(sess)
			logger.Info("session ended", "user", sess.User(), "ip", ip)
		}
	}
}

// remoteIP returns the session's IP without the port.
func remoteIP(sess ssh.Session) string {
	if addr, ok := sess.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return sess.RemoteAddr().String()
}
