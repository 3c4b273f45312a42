package sync

import (
	"bufio"
	"errors"
	"net"
	"sync"
	"time"

	"practicehub/internal/logger"
)

// Server accepts plain TCP subscribers (kiosk displays, sync-client).
type Server struct {
	Addr string
	Hub  *Hub
	Log  *logger.Logger

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

func NewServer(addr string, hub *Hub, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{Addr: addr, Hub: hub, Log: log}
}

// Run listens on Addr and blocks until Close is called.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts subscribers on ln until Close is called.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.Log.Info("tcp sync listening", "addr", ln.Addr().String())

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			backoff = nextBackoff(backoff)
			s.Log.Warn("tcp sync accept failed", "error", err, "retry_in", backoff.String())
			time.Sleep(backoff)
			continue
		}
		backoff = 0

		if !s.Hub.Add(conn) {
			continue
		}
		s.Log.Debug("tcp sync client connected", "remote", conn.RemoteAddr().String())

		s.wg.Add(1)
		go func(c net.Conn) {
			defer s.wg.Done()
			defer func() {
				s.Hub.Remove(c)
				s.Log.Debug("tcp sync client disconnected", "remote", c.RemoteAddr().String())
			}()

			// subscribers never send anything meaningful; drain until EOF
			sc := bufio.NewScanner(c)
			for sc.Scan() {
			}
		}(conn)
	}
}

// Close stops accepting and disconnects subscribers.
func (s *Server) Close() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return nil
	}
	err := ln.Close()
	s.Hub.Close()
	return err
}

// nextBackoff doubles the accept retry delay from 5ms up to one second.
func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	d *= 2
	if d > time.Second {
		d = time.Second
	}
	return d
}
