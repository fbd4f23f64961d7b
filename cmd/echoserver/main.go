// Command echoserver runs a reactor-based TCP echo server: a chunk
// received from a client is written back verbatim, after which the
// connection's write side is shut down, so only the first chunk of each
// connection is echoed.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/yourusername/reactor/pkg/reactor/rlog"
	"github.com/yourusername/reactor/pkg/reactor/server"
)

type echoHandler struct {
	logger rlog.Logger
}

func (h *echoHandler) OnConnect(s *server.Server, c *server.Client) {
	h.logger.Infof("client connected fd=%d", c.FD())
}

func (h *echoHandler) OnClose(s *server.Server, c *server.Client) {
	h.logger.Infof("client disconnected fd=%d", c.FD())
}

func (h *echoHandler) OnRead(s *server.Server, c *server.Client, chunk []byte) {
	h.logger.Infof("client fd=%d sent %d bytes", c.FD(), len(chunk))
	unix.Write(c.FD(), chunk)
	unix.Shutdown(c.FD(), unix.SHUT_WR)
}

func (h *echoHandler) OnError(s *server.Server, c *server.Client, err error) {
	h.logger.Warnf("client fd=%d failed: %v", c.FD(), err)
}

func main() {
	var port int
	var backlog int
	var logLevel string

	root := &cobra.Command{
		Use:   "echoserver",
		Short: "Run a non-blocking TCP echo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rlog.New(logLevel)
			h := &echoHandler{logger: logger}
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
