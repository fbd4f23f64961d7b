package httpwire

import "testing"

func TestParseRequestComplete(t *testing.T) {
	raw := "GET /foo HTTP/1.1\r\nHost: example.com\r\nAccept: */*\r\n\r\n"
	req, n := ParseRequest([]byte(raw))
	if n != len(raw) {
		t.Fatalf("consumed %d, want %d", n, len(raw))
	}
	if req.Method != "GET" || req.URI != "/foo" || req.Version != "HTTP/1.1" {
		t.Fatalf("got %+v", req)
	}
	host, ok := req.Headers.Get("host")
	if !ok || host != "example.com" {
		t.Fatalf("host header = %q, %v", host, ok)
	}
}

func TestParseRequestHeadersAreStored(t *testing.T) {
	raw := "POST /a HTTP/1.1\r\nX-One: 1\r\nX-Two: 2\r\n\r\n"
	req, n := ParseRequest([]byte(raw))
	if n != len(raw) {
		t.Fatalf("consumed %d, want %d", n, len(raw))
	}
	if req.Headers.Len() != 2 {
		t.Fatalf("Headers.Len() = %d, want 2 (parsed headers must be stored, not discarded)", req.Headers.Len())
	}
}

func TestParseRequestIncompleteRequestLine(t *testing.T) {
	_, status := ParseRequest([]byte("GET /foo HTTP/1."))
	if status != Incomplete {
		t.Fatalf("status = %d, want Incomplete", status)
	}
}

func TestParseRequestIncompleteHeaders(t *testing.T) {
	_, status := ParseRequest([]byte("GET /foo HTTP/1.1\r\nHost: example.com\r\n"))
	if status != Incomplete {
		t.Fatalf("status = %d, want Incomplete", status)
	}
}

func TestParseRequestBadMethod(t *testing.T) {
	_, status := ParseRequest([]byte(" GET /foo HTTP/1.1\r\n\r\n"))
	if status != BadRequest {
		t.Fatalf("status = %d, want BadRequest", status)
	}
}

func TestParseRequestBadVersion(t *testing.T) {
	_, status := ParseRequest([]byte("GET /foo FOO/1.1\r\n\r\n"))
	if status != BadRequest {
		t.Fatalf("status = %d, want BadRequest", status)
	}
}

func TestParseRequestNoHeadersJustBlankLine(t *testing.T) {
	raw := "GET / HTTP/1.1\r\n\r\n"
	req, n := ParseRequest([]byte(raw))
	if n != len(raw) {
		t.Fatalf("consumed %d, want %d", n, len(raw))
	}
	if req.Headers.Len() != 0 {
		t.Fatalf("Headers.Len() = %d, want 0", req.Headers.Len())
	}
}

func TestParseRequestHeaderKeysAreLowercased(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nX-Custom-Header: Value\r\n\r\n"
	req, _ := ParseRequest([]byte(raw))
	if _, ok := req.Headers.Get("x-custom-header"); !ok {
		t.Fatal("header key must be lowercased on parse")
	}
}

func TestParseRequestHeaderValueIsStripped(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nX: \t  padded  \t\r\n\r\n"
	req, _ := ParseRequest([]byte(raw))
	v, ok := req.Headers.Get("x")
	if !ok || v != "padded" {
		t.Fatalf("got %q, %v, want %q, true", v, ok, "padded")
	}
}

func TestParseRequestPipeliningConsumesOnlyOneMessage(t *testing.T) {
	raw := "GET /a HTTP/1.1\r\n\r\nGET /b HTTP/1.1\r\n\r\n"
	req, n := ParseRequest([]byte(raw))
	if req.URI != "/a" {
		t.Fatalf("URI = %q, want /a", req.URI)
	}
	rest := raw[n:]
	req2, n2 := ParseRequest([]byte(rest))
	if n2 != len(rest) || req2.URI != "/b" {
		t.Fatalf("second message not parsed correctly: %+v, n2=%d", req2, n2)
	}
}
