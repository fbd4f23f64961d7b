// Package competitors benchmarks the reactor server against net/http
// and fasthttp on a simple GET round trip, grounded on this codebase's
// original client/server comparison benchmarks, adapted to compare the
// single-threaded reactor rather than a goroutine-per-connection server.
package competitors

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"golang.org/x/sys/unix"

	"github.com/yourusername/reactor/pkg/reactor/httpwire"
	"github.com/yourusername/reactor/pkg/reactor/server"
)

type reactorHandler struct {
	readBufs map[int][]byte
}

func (h *reactorHandler) OnConnect(s *server.Server, c *server.Client) {}
func (h *reactorHandler) OnClose(s *server.Server, c *server.Client)   {}
func (h *reactorHandler) OnError(s *server.Server, c *server.Client, err error) {}

func (h *reactorHandler) OnRead(s *server.Server, c *server.Client, chunk []byte) {
	buf := append(h.readBufs[c.FD()], chunk...)
	req, n := httpwire.ParseRequest(buf)
	if n == httpwire.Incomplete {
		h.readBufs[c.FD()] = buf
		return
	}
	if n == httpwire.BadRequest {
		h.readBufs[c.FD()] = nil
		return
	}
	_ = req
	h.readBufs[c.FD()] = buf[n:]

	res := httpwire.NewResponse()
	res.Headers.Set("content-length", "2")
	head := httpwire.WriteHead(res)
	body := []byte("OK")
	unix.Write(c.FD(), append(head, body...))
}

// runReactorServer starts a reactor server on a loopback port and
// returns its base URL plus a stop function. Polling happens on a
// background goroutine purely for the convenience of driving the
// benchmark's request/response cycle; the reactor itself remains
// single-threaded and non-blocking.
func runReactorServer(b *testing.B, port int) (baseURL string, stop func()) {
	b.Helper()
	h := &reactorHandler{readBufs: make(map[int][]byte)}
	cfg := server.DefaultConfig()
	cfg.Handler = h
	s := server.New(cfg)
	if err := s.Listen(port, 128); err != nil {
		b.Fatalf("Listen: %v", err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				s.Poll()
				time.Sleep(time.Microsecond)
			}
		}
	}()

	return "http://" + (&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port}).String(), func() {
		close(done)
		s.Destroy()
	}
}

func BenchmarkComparisonSimpleGET(b *testing.B) {
	b.Run("net/http", func(b *testing.B) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		srv := httptest.NewServer(handler)
		defer srv.Close()

		client := &http.Client{Transport: &http.Transport{MaxIdleConnsPerHost: 100, DisableCompression: true}}

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			resp, err := client.Get(srv.URL)
			if err != nil {
				b.Fatal(err)
			}
			resp.Body.Close()
		}
	})

	b.Run("fasthttp", func(b *testing.B) {
		handler := func(ctx *fasthttp.RequestCtx) {
			ctx.SetStatusCode(fasthttp.StatusOK)
			ctx.WriteString("OK")
		}
		srv := &fasthttp.Server{Handler: handler}
		ln := fasthttputil.NewInmemoryListener()
		defer ln.Close()
		go srv.Serve(ln)

		client := &fasthttp.Client{Dial: func(addr string) (net.Conn, error) { return ln.Dial() }}
		var req fasthttp.Request
		var resp fasthttp.Response
		req.SetRequestURI("http://localhost/")

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			client.Do(&req, &resp)
			resp.Reset()
		}
	})

	b.Run("reactor", func(b *testing.B) {
		const port = 28100
		_, stop := runReactorServer(b, port)
		defer stop()
		time.Sleep(10 * time.Millisecond)

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			conn, err := net.Dial("tcp", "127.0.0.1:28100")
			if err != nil {
				b.Fatal(err)
			}
			conn.Write([]byte("GET / HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\n\r\n"))
			bufio.NewReader(conn).ReadString('\n')
			conn.Close()
		}
	})
}
