// Command httpserver runs a reactor-based HTTP/1.0 and HTTP/1.1 server:
// each connection accumulates bytes until a full request can be parsed,
// responds with an empty 200 (or a 505 for unsupported versions), and
// honors HTTP/1.0's close-by-default / HTTP/1.1's keep-alive-by-default
// Connection header semantics.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/yourusername/reactor/pkg/reactor/httpwire"
	"github.com/yourusername/reactor/pkg/reactor/rlog"
	"github.com/yourusername/reactor/pkg/reactor/server"
)

// connState is the per-connection application data attached via
// Client.SetData, mirroring the original core's http_client_t.
type connState struct {
	connectTime time.Time
	readBuf     []byte
}

type httpHandler struct {
	logger rlog.Logger
}

func (h *httpHandler) OnConnect(s *server.Server, c *server.Client) {
	h.logger.Infof("client connected fd=%d", c.FD())
	c.SetData(&connState{connectTime: time.Now()})
}

func (h *httpHandler) OnClose(s *server.Server, c *server.Client) {
	h.logger.Infof("client disconnected fd=%d", c.FD())
}

func (h *httpHandler) OnError(s *server.Server, c *server.Client, err error) {
	h.logger.Warnf("client fd=%d failed: %v", c.FD(), err)
}

func (h *httpHandler) OnRead(s *server.Server, c *server.Client, chunk []byte) {
	state := c.Data().(*connState)
	state.readBuf = append(state.readBuf, chunk...)

	req, n := httpwire.ParseRequest(state.readBuf)
	switch {
	case n == httpwire.BadRequest:
		h.logger.Warnf("fd=%d invalid http request", c.FD())
		state.readBuf = nil
		return
	case n == httpwire.Incomplete:
		return
	}

	h.logger.Infof("fd=%d %s %s", c.FD(), req.Method, req.URI)
	state.readBuf = state.readBuf[n:]

	res := httpwire.NewResponse()
	close := h.buildResponse(req, res)

	head := httpwire.WriteHead(res)
	unix.Write(c.FD(), head)
	if close {
		s.CloseClient(c)
	}
}

// buildResponse fills in res's status and headers per req's HTTP
// version and Connection header, and reports whether the connection
// should be closed after the response is written.
func (h *httpHandler) buildResponse(req *httpwire.Request, res *httpwire.Response) (closeConn bool) {
	switch req.Version {
	case "HTTP/1.0":
		connection, _ := req.Headers.Get("connection")
		closeConn = connection != "keep-alive"
		if closeConn {
			res.Headers.Set("connection", "close")
		} else {
			res.Headers.Set("connection", "keep-alive")
			res.Headers.Set("content-length", "0")
		}
	case "HTTP/1.1":
		connection, _ := req.Headers.Get("connection")
		closeConn = connection == "close"
		if closeConn {
			res.Headers.Set("connection", "close")
		} else {
			res.Headers.Set("connection", "keep-alive")
			res.Headers.Set("content-length", "0")
		}
	default:
		res.Status = 505
		res.Headers.Set("content-length", "0")
		closeConn = true
	}
	return closeConn
}

func main() {
	var port int
	var backlog int
	var logLevel string

	root := &cobra.Command{
		Use:   "httpserver",
		Short: "Run a non-blocking HTTP/1.0-1.1 server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rlog.New(logLevel)
			h := &httpHandler{logger: logger}
			cfg := server.DefaultConfig()
			cfg.Handler = h
			cfg.Logger = logger

			s := server.New(cfg)
			if err := s.Listen(port, backlog); err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			logger.Infof("listening on port %d", port)

			for {
				if err := s.Poll(); err != nil {
					logger.Errorf("poll: %v", err)
				}
				time.Sleep(time.Millisecond)
			}
		},
	}
	root.Flags().IntVar(&port, "port", 8000, "TCP port to listen on")
	root.Flags().IntVar(&backlog, "backlog", 16, "maximum queued connections")
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
