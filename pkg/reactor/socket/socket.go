// Package socket implements a non-blocking client TCP socket with an
// explicit (connected, open_read, open_write) state machine, grounded
// on the original reactor core's tcp_socket.c.
package socket

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/yourusername/reactor/pkg/reactor/buffer"
)

// ErrInvalidAddress indicates Connect was given a non-numeric IPv4
// address; unlike the original core, name resolution is never
// attempted (DNS resolution is out of scope).
var ErrInvalidAddress = errors.New("socket: address must be a dotted-decimal IPv4 address")

// Handler receives socket lifecycle events. Implementations must not
// block, since events are dispatched synchronously from Poll.
type Handler interface {
	OnConnect(s *Socket)
	OnClose(s *Socket)
	OnError(s *Socket, err error)
	OnRead(s *Socket, chunk []byte)
	OnEnd(s *Socket)
	OnDrain(s *Socket)
}

// Socket is a non-blocking client TCP socket.
type Socket struct {
	fd      int
	handler Handler

	connected  bool
	connecting bool
	openRead   bool
	openWrite  bool

	// writeQueue accumulates bytes that could not be written
	// immediately because the socket would have blocked; Poll drains it
	// opportunistically and fires OnDrain once it empties, a feature the
	// original core declared (tcp_socket_write) but never implemented.
	writeQueue []byte
}

// New creates a non-blocking client socket bound to no remote peer yet;
// call Connect to initiate a connection.
func New(handler Handler) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, fmt.Errorf("socket: socket: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socket: set nonblock: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socket: setsockopt SO_REUSEPORT: %w", err)
	}
	if err := unix.SetsockoptLinger(fd, unix.SOL_SOCKET, unix.SO_LINGER, &unix.Linger{Onoff: 1, Linger: 0}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socket: setsockopt SO_LINGER: %w", err)
	}
	return &Socket{fd: fd, handler: handler}, nil
}

// FD returns the socket's underlying file descriptor.
func (s *Socket) FD() int { return s.fd }

// IsPending reports whether Connect has not yet been called.
func (s *Socket) IsPending() bool { return !s.connecting && !s.connected }

// Connect initiates a connection to the given dotted-decimal IPv4
// address and port. It does not block: the connection's progress is
// observed on subsequent Poll calls, which fire OnConnect once it
// completes. An EINPROGRESS result from the underlying connect(2) call
// is not an error.
func (s *Socket) Connect(host string, port int) error {
	ip, ok := parseIPv4(host)
	if !ok {
		return ErrInvalidAddress
	}
	addr := &unix.SockaddrInet4{Port: port, Addr: ip}
	s.connecting = true
	err := unix.Connect(s.fd, addr)
	if err != nil && err != unix.EINPROGRESS {
		s.connecting = false
		return fmt.Errorf("socket: connect: %w", err)
	}
	return nil
}

func parseIPv4(host string) ([4]byte, bool) {
	var out [4]byte
	var octet, count, digits int
	for i := 0; i <= len(host); i++ {
		if i == len(host) || host[i] == '.' {
			if digits == 0 || digits > 3 || octet > 255 {
				return out, false
			}
			if count > 3 {
				return out, false
			}
			out[count] = byte(octet)
			count++
			octet, digits = 0, 0
			continue
		}
		c := host[i]
		if c < '0' || c > '9' {
			return out, false
		}
		octet = octet*10 + int(c-'0')
		digits++
	}
	return out, count == 4
}

// IsConnecting reports whether Connect has been called but the
// connection has not yet been observed as complete.
func (s *Socket) IsConnecting() bool { return s.connecting && !s.connected }

// Poll checks the socket for connection completion, errors, readability,
// and writability, dispatching the corresponding handler callbacks
// synchronously.
func (s *Socket) Poll() error {
	if !s.connected {
		if _, err := unix.Getpeername(s.fd); err == nil {
			s.connected = true
			s.connecting = false
			s.openRead = true
			s.openWrite = true
			s.handler.OnConnect(s)
		}
	}

	if errno, err := unix.GetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_ERROR); err != nil {
		return fmt.Errorf("socket: getsockopt SO_ERROR: %w", err)
	} else if errno != 0 {
		s.handler.OnError(s, unix.Errno(errno))
	}

	if !s.connected {
		return nil
	}

	events := int16(0)
	if s.openRead {
		events |= unix.POLLIN
	}
	if len(s.writeQueue) > 0 {
		events |= unix.POLLOUT
	}
	if events == 0 {
		return nil
	}

	fds := []unix.PollFd{{Fd: int32(s.fd), Events: events}}
	n, err := unix.Poll(fds, 0)
	if err != nil {
		return fmt.Errorf("socket: poll: %w", err)
	}
	if n <= 0 {
		return nil
	}

	if fds[0].Revents&unix.POLLIN != 0 {
		s.pollRead()
	}
	if fds[0].Revents&unix.POLLOUT != 0 {
		s.pollWrite()
	}
	return nil
}

func (s *Socket) pollRead() {
	scratch := buffer.GetScratch()
	nread, err := unix.Read(s.fd, scratch.B)
	switch {
	case err != nil && err != unix.EAGAIN && err != unix.EWOULDBLOCK:
		s.handler.OnError(s, err)
	case nread == 0 && err == nil:
		s.openRead = false
		if s.openWrite {
			s.handler.OnEnd(s)
		} else {
			unix.Close(s.fd)
			s.handler.OnClose(s)
		}
	case nread > 0:
		s.handler.OnRead(s, scratch.B[:nread])
	}
	buffer.PutScratch(scratch)
}

func (s *Socket) pollWrite() {
	for len(s.writeQueue) > 0 {
		n, err := unix.Write(s.fd, s.writeQueue)
		if n > 0 {
			s.writeQueue = s.writeQueue[n:]
		}
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				return
			}
			s.handler.OnError(s, err)
			return
		}
		if n == 0 {
			return
		}
	}
	if len(s.writeQueue) == 0 {
		s.handler.OnDrain(s)
	}
}

// Write attempts to write buf to the socket immediately. If the entire
// buffer is written without blocking, it returns true. Otherwise the
// unwritten remainder is appended to an internal write queue that Poll
// drains opportunistically, and Write returns false; OnDrain fires once
// the queue empties. If bytes are already queued, buf is appended behind
// them without a write attempt. A write error other than EAGAIN/
// EWOULDBLOCK fires OnError, returns false, and the remainder is not
// queued.
func (s *Socket) Write(buf []byte) bool {
	if len(s.writeQueue) > 0 {
		s.writeQueue = append(s.writeQueue, buf...)
		return false
	}
	n, err := unix.Write(s.fd, buf)
	if n > 0 {
		buf = buf[n:]
	}
	if len(buf) == 0 {
		return true
	}
	if err != nil && err != unix.EAGAIN && err != unix.EWOULDBLOCK {
		s.handler.OnError(s, err)
		return false
	}
	s.writeQueue = append(s.writeQueue, buf...)
	return false
}

// End half-closes the socket for writing by sending a FIN. If the peer
// has already half-closed its write side (open_read is already false),
// the socket is closed completely and OnClose fires immediately;
// otherwise the socket remains open for reading until the peer's FIN
// arrives, at which point Poll closes it and fires OnClose.
func (s *Socket) End() {
	if s.openWrite {
		unix.Shutdown(s.fd, unix.SHUT_WR)
		s.openWrite = false
	}
	if !s.openRead {
		unix.Close(s.fd)
		s.handler.OnClose(s)
	}
}
