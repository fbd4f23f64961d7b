// Command tcpclient connects to a TCP server, sends "ping", logs
// whatever is read back, and follows the peer's half-close with its own,
// grounded on the original reactor core's client demo.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/reactor/pkg/reactor/rlog"
	"github.com/yourusername/reactor/pkg/reactor/socket"
)

type clientHandler struct {
	logger rlog.Logger
}

func (h *clientHandler) OnConnect(s *socket.Socket) {
	h.logger.Infof("connect")
	s.Write([]byte("ping"))
}

func (h *clientHandler) OnRead(s *socket.Socket, chunk []byte) {
	h.logger.Infof("read %s", string(chunk))
}

func (h *clientHandler) OnEnd(s *socket.Socket) {
	h.logger.Infof("end")
	s.End()
}

func (h *clientHandler) OnClose(s *socket.Socket) {
	h.logger.Infof("close")
}

func (h *clientHandler) OnError(s *socket.Socket, err error) {
	h.logger.Errorf("error %v", err)
}

func (h *clientHandler) OnDrain(s *socket.Socket) {
	h.logger.Debugf("drain")
}

func main() {
	var host string
	var port int
	var logLevel string

	root := &cobra.Command{
		Use:   "tcpclient",
		Short: "Connect to a TCP server and exchange a ping",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rlog.New(logLevel)
			h := &clientHandler{logger: logger}

			sock, err := socket.New(h)
			if err != nil {
				return fmt.Errorf("new socket: %w", err)
			}
			if err := sock.Connect(host, port); err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			for {
				if err := sock.Poll(); err != nil {
					logger.Errorf("poll: %v", err)
				}
				time.Sleep(time.Millisecond)
			}
		},
	}
	root.Flags().StringVar(&host, "host", "127.0.0.1", "remote IPv4 address")
	root.Flags().IntVar(&port, "port", 8000, "remote port")
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
