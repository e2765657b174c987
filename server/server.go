// Package server accepts digit commands over a TCP connection, one
// connection at a time. Each accepted connection gets a single buffer read;
// every valid command byte in it is handed to the registered handler while
// the connection is still open, then the connection is closed.
package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync/atomic"
	"time"
)

const (
	// DefaultPort is used when the configured port is 0.
	DefaultPort = 8080

	// One read per connection; bytes beyond this stay unread.
	bufferSize = 64

	acceptRetryDelay = 100 * time.Millisecond
)

// Handler is invoked synchronously for every valid command byte. The
// connection stays open for the duration of the call so the handler can
// write its response.
type Handler func(cmd byte, conn net.Conn)

// Config holds command listener settings.
type Config struct {
	Port int `yaml:"port"` // 0 = DefaultPort
}

// Server owns the listening socket and the accept/read/dispatch loop.
// Construct once at startup; it is not reusable after Stop.
type Server struct {
	ln      net.Listener
	port    int
	handler Handler
	running atomic.Bool
}

// New binds and listens on the configured port. Connections are not
// accepted until Serve runs; early arrivals wait in the OS backlog.
func New(cfg Config, handler Handler) (*Server, error) {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("bind port %d: %w", port, err)
	}

	return &Server{ln: ln, port: port, handler: handler}, nil
}

// SetHandler replaces the command handler. Call before Serve starts.
func (s *Server) SetHandler(h Handler) {
	s.handler = h
}

// Serve runs the accept loop until Stop closes the listener. One connection
// is serviced at a time: a multi-digit burst, including any blocking delays
// its commands trigger, stalls later connections in the backlog until the
// current connection is closed.
func (s *Server) Serve() error {
	s.running.Store(true)
	defer s.running.Store(false)

	log.Printf("Command listener on %s", s.ln.Addr())

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || !s.running.Load() {
				log.Println("Command listener stopped")
				return nil
			}
			log.Printf("Accept: %v", err)
			time.Sleep(acceptRetryDelay)
			continue
		}
		s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	log.Printf("Client connected: %s", conn.RemoteAddr())

	buf := make([]byte, bufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			log.Printf("Client %s closed connection", conn.RemoteAddr())
		} else {
			log.Printf("Read from %s: %v", conn.RemoteAddr(), err)
		}
		return
	}

	for _, c := range buf[:n] {
		switch {
		case c >= '0' && c <= '9':
			if s.handler != nil {
				s.handler(c, conn)
			}
		case c == '\r' || c == '\n':
			// line endings from interactive clients, ignored
		default:
			log.Printf("Invalid command byte 0x%02x from %s", c, conn.RemoteAddr())
		}
	}
}

// Stop closes the listening socket. A connection being serviced is not
// interrupted; it finishes or fails naturally.
func (s *Server) Stop() {
	s.running.Store(false)
	s.ln.Close()
}

// Running reports whether the serve loop is active.
func (s *Server) Running() bool {
	return s.running.Load()
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Port returns the port the listener is bound to.
func (s *Server) Port() int {
	return s.port
}

// SendResponse writes an ASCII response on the connection and returns the
// byte count written.
func SendResponse(w io.Writer, text string) (int, error) {
	n, err := io.WriteString(w, text)
	if err != nil {
		return n, fmt.Errorf("send response: %w", err)
	}
	return n, nil
}
