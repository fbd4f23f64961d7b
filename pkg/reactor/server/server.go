// Package server implements a single-threaded, non-blocking TCP reactor:
// one listening socket and a set of client connections are polled for
// readiness on each call to Poll, with accepts, reads, and client-close
// handled synchronously within that single call. Grounded on the
// original reactor core's tcp.c.
package server

import (
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github.com/yourusername/reactor/pkg/reactor/buffer"
	"github.com/yourusername/reactor/pkg/reactor/rlog"
)

// Client represents one accepted connection. It is only valid for the
// lifetime between the on_connect and on_close callbacks for that
// connection; holding a Client past on_close is a use-after-close bug,
// matching the original core's tcp_client_t lifetime.
type Client struct {
	fd     int
	addr   unix.Sockaddr
	data   any
	closed bool
}

// FD returns the client's underlying file descriptor.
func (c *Client) FD() int { return c.fd }

// Addr returns the client's remote socket address.
func (c *Client) Addr() unix.Sockaddr { return c.addr }

// SetData attaches application-specific state to the client. Callers
// are responsible for releasing it in their OnClose handler.
func (c *Client) SetData(v any) { c.data = v }

// Data returns the application-specific state set via SetData, or nil.
func (c *Client) Data() any { return c.data }

// Handler receives reactor events. Implementations must not block, as
// all events for all connections are dispatched synchronously from a
// single call to Poll.
type Handler interface {
	OnConnect(s *Server, c *Client)
	OnClose(s *Server, c *Client)
	OnRead(s *Server, c *Client, chunk []byte)
	OnError(s *Server, c *Client, err error)
}

// Stats holds atomic connection and throughput counters, adapted from
// the ambient Config/Stats shape used across this codebase's server
// implementations.
type Stats struct {
	TotalConnections  atomic.Int64
	ActiveConnections atomic.Int64
	BytesRead         atomic.Int64
	ConnectionErrors  atomic.Int64
	StartTime         time.Time
}

// Duration returns how long the server has been running.
func (s *Stats) Duration() time.Duration {
	return time.Since(s.StartTime)
}

// Config configures a Server.
type Config struct {
	Handler Handler
	Logger  rlog.Logger
}

// DefaultConfig returns a Config with a no-op logger. Handler must still
// be set by the caller.
func DefaultConfig() Config {
	return Config{Logger: rlog.Nop()}
}

// Server is a single-threaded TCP reactor.
type Server struct {
	listenFd int
	pollfds  []unix.PollFd
	clients  []*Client
	handler  Handler
	logger   rlog.Logger
	stats    Stats

	// closed is the tombstone flag: set whenever a client is closed
	// mid-poll, it defers index-shifting compaction to the start of the
	// next Poll call so iteration over pollfds/clients never observes a
	// shifted index mid-loop.
	closed bool
}

// New creates a Server bound to no socket yet; call Listen to start
// accepting connections.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = rlog.Nop()
	}
	s := &Server{
		listenFd: -1,
		handler:  cfg.Handler,
		logger:   logger,
	}
	s.stats.StartTime = time.Now()
	return s
}

// Listen opens a non-blocking listening socket on the given port with
// the given accept backlog.
func (s *Server) Listen(port, backlog int) error {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return fmt.Errorf("server: socket: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return fmt.Errorf("server: set nonblock: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return fmt.Errorf("server: setsockopt SO_REUSEADDR: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		unix.Close(fd)
		return fmt.Errorf("server: setsockopt SO_REUSEPORT: %w", err)
	}
	addr := &unix.SockaddrInet4{Port: port}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return fmt.Errorf("server: bind: %w", err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return fmt.Errorf("server: listen: %w", err)
	}
	s.pollfds = append(s.pollfds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	s.listenFd = fd
	return nil
}

func (s *Server) addClient(c *Client) {
	s.pollfds = append(s.pollfds, unix.PollFd{Fd: int32(c.fd), Events: unix.POLLIN})
	s.clients = append(s.clients, c)
}

// removeClientAt deletes the client at index i (and its paired pollfd,
// offset by one for the listening socket's leading entry), preserving
// the relative order of the remaining clients.
func (s *Server) removeClientAt(i int) {
	s.pollfds = append(s.pollfds[:i+1], s.pollfds[i+2:]...)
	s.clients = append(s.clients[:i], s.clients[i+1:]...)
}

func (s *Server) removeClosedClients() {
	for i := 0; i < len(s.clients); i++ {
		if s.clients[i].closed {
			s.removeClientAt(i)
			i--
		}
	}
}

// Poll performs one non-blocking readiness check across the listening
// socket and every client connection, dispatching OnConnect/OnRead/
// OnClose/OnError synchronously. It returns immediately (zero timeout)
// whether or not any descriptor was ready.
func (s *Server) Poll() error {
	if s.closed {
		s.removeClosedClients()
		s.closed = false
	}

	n, err := unix.Poll(s.pollfds, 0)
	if err != nil {
		return fmt.Errorf("server: poll: %w", err)
	}
	if n <= 0 {
		return nil
	}

	for i := range s.pollfds {
		pfd := &s.pollfds[i]
		if pfd.Revents == 0 {
			continue
		}
		if int(pfd.Fd) == s.listenFd {
			s.acceptOne()
			continue
		}

		client := s.clients[i-1]
		if client.closed {
			continue
		}

		scratch := buffer.GetScratch()
		nread, err := unix.Read(int(pfd.Fd), scratch.B)
		switch {
		case err != nil && err != unix.EAGAIN && err != unix.EWOULDBLOCK:
			s.stats.ConnectionErrors.Add(1)
			s.handler.OnError(s, client, err)
			s.CloseClient(client)
		case nread == 0 && err == nil:
			s.CloseClient(client)
		case nread > 0:
			s.stats.BytesRead.Add(int64(nread))
			s.handler.OnRead(s, client, scratch.B[:nread])
		}
		buffer.PutScratch(scratch)
	}
	return nil
}

func (s *Server) acceptOne() {
	fd, addr, err := unix.Accept(s.listenFd)
	if err != nil {
		s.logger.Warnf("accept: %v", err)
		return
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		s.logger.Warnf("accept: set nonblock: %v", err)
		unix.Close(fd)
		return
	}
	client := &Client{fd: fd, addr: addr}
	s.addClient(client)
	s.stats.TotalConnections.Add(1)
	s.stats.ActiveConnections.Add(1)
	s.handler.OnConnect(s, client)
}

// CloseClient closes a client's file descriptor synchronously, invokes
// OnClose synchronously, and marks the client as a tombstone so that the
// next Poll call compacts it out of the index without disturbing indices
// currently being iterated.
func (s *Server) CloseClient(c *Client) {
	unix.Close(c.fd)
	s.handler.OnClose(s, c)
	c.closed = true
	s.closed = true
	s.stats.ActiveConnections.Add(-1)
}

// Destroy closes every remaining client (invoking OnClose for each) and
// the listening socket, releasing all resources held by the server.
func (s *Server) Destroy() error {
	for _, c := range s.clients {
		if c.closed {
			continue
		}
		unix.Close(c.fd)
		s.handler.OnClose(s, c)
	}
	s.clients = nil
	s.pollfds = nil
	if s.listenFd >= 0 {
		err := unix.Close(s.listenFd)
		s.listenFd = -1
		return err
	}
	return nil
}

// Stats returns a snapshot of the server's running counters.
func (s *Server) Stats() *Stats {
	return &s.stats
}
