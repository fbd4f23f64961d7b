package httpwire

import (
	"strconv"
	"strings"
)

// Response is an HTTP response message: a status line, an ordered
// header multimap, and a body. NewResponse mirrors
// http_response_create's defaults.
type Response struct {
	Version string
	Status  int
	Headers *Header
	Body    []byte
}

// NewResponse returns a Response defaulted to "HTTP/1.1" and status 200.
func NewResponse() *Response {
	return &Response{
		Version: "HTTP/1.1",
		Status:  200,
		Headers: NewHeader(),
	}
}

// parseStatusLine parses "version SP status-code SP reason-phrase CRLF".
func parseStatusLine(buf []byte) (n int, version []byte, status int, code int) {
	acc := 0
	rest := buf

	vn, v, st := httpVersion(rest)
	if st < 0 {
		return 0, nil, st, 0
	}
	acc += vn
	rest = rest[vn:]

	if len(rest) < 1 {
		return 0, nil, Need, 0
	}
	if rest[0] != ' ' {
		return 0, nil, Bad, 0
	}
	acc++
	rest = rest[1:]

	cn, sc, st := statusCode(rest)
	if st < 0 {
		return 0, nil, st, 0
	}
	acc += cn
	rest = rest[cn:]

	if len(rest) < 1 {
		return 0, nil, Need, 0
	}
	if rest[0] != ' ' {
		return 0, nil, Bad, 0
	}
	acc++
	rest = rest[1:]

	rn, _ := reasonPhrase(rest)
	acc += rn
	rest = rest[rn:]

	nn, st := newline(rest)
	if st < 0 {
		return 0, nil, st, 0
	}
	acc += nn

	return acc, v, acc, sc
}

// ParseResponse incrementally parses an HTTP response from buf, using the
// same Incomplete/BadRequest contract as ParseRequest.
func ParseResponse(buf []byte) (*Response, int) {
	rn, version, st, code := parseStatusLine(buf)
	if st == Need {
		return nil, Incomplete
	}
	if st == Bad {
		return nil, BadRequest
	}

	res := &Response{
		Version: string(version),
		Status:  code,
		Headers: NewHeader(),
	}

	hn, st := parseHeaders(buf[rn:], res.Headers)
	if st == Need {
		return nil, Incomplete
	}
	if st == Bad {
		return nil, BadRequest
	}

	return res, rn + hn
}

// WriteHead serializes the response's status line and headers (not the
// body) into wire bytes, matching http_response_write_head's
// "%8s %03d %s\r\n" status line followed by "key: value\r\n" per header
// and a final blank line.
func WriteHead(res *Response) []byte {
	var b strings.Builder

	version := res.Version
	if len(version) < 8 {
		version = strings.Repeat(" ", 8-len(version)) + version
	}

	b.WriteString(version)
	b.WriteByte(' ')
	statusStr := strconv.Itoa(res.Status)
	for len(statusStr) < 3 {
		statusStr = "0" + statusStr
	}
	b.WriteString(statusStr)
	b.WriteByte(' ')
	b.WriteString(ReasonPhrase(res.Status))
	b.WriteString("\r\n")

	res.Headers.VisitAll(func(key, value string) {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	})

	b.WriteString("\r\n")
	return []byte(b.String())
}
