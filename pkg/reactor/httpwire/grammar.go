// Package httpwire implements an incremental HTTP/1.x message codec:
// RFC 7230 grammar primitives, an ordered header multimap, and
// request/response parsing and serialization, grounded on the original
// reactor core's http.c.
package httpwire

import "github.com/yourusername/reactor/pkg/reactor/pathutil"

// Every grammar primitive below follows a three-way contract:
//   n >= 0   — n bytes of buf were consumed by a complete match
//   Need     — buf holds a valid but incomplete prefix; more bytes required
//   Bad      — buf cannot be the start of, or does not match, the grammar
const (
	Need = -1
	Bad  = -2
)

func isVChar(c byte) bool {
	return c >= 0x21 && c <= 0x7E
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isObsText(c byte) bool {
	return c >= 0x80
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTChar(c byte) bool {
	switch c {
	case '!', '#', '$', '%', '&', '*', '+', '-', '.', '^', '_', '`', '|', '~', '\'':
		return true
	}
	return isDigit(c) || isAlpha(c)
}

// token parses an RFC 7230 tchar run. On success it returns the number
// of bytes consumed and the matched slice (a view into buf).
func token(buf []byte) (n int, tok []byte, status int) {
	if len(buf) == 0 {
		return 0, nil, Need
	}
	if !isTChar(buf[0]) {
		return 0, nil, Bad
	}
	for i := 0; i < len(buf); i++ {
		if !isTChar(buf[i]) {
			return i, buf[:i], i
		}
	}
	return len(buf), buf, len(buf)
}

// space parses one or more SP/HTAB bytes, returning the count consumed.
func space(buf []byte) (n int, status int) {
	if len(buf) == 0 {
		return 0, Need
	}
	if !isSpace(buf[0]) {
		return 0, Bad
	}
	for i := 0; i < len(buf); i++ {
		if !isSpace(buf[i]) {
			return i, i
		}
	}
	return len(buf), len(buf)
}

// httpVersion parses exactly "HTTP/" DIGIT "." DIGIT (8 bytes), returning
// the matched slice.
func httpVersion(buf []byte) (n int, ver []byte, status int) {
	const prefix = "HTTP/"
	if len(buf) < len(prefix) {
		if string(buf) == prefix[:len(buf)] {
			return 0, nil, Need
		}
		return 0, nil, Bad
	}
	if string(buf[:len(prefix)]) != prefix {
		return 0, nil, Bad
	}
	if len(buf) < 6 {
		return 0, nil, Need
	}
	if !isDigit(buf[5]) {
		return 0, nil, Bad
	}
	if len(buf) < 7 {
		return 0, nil, Need
	}
	if buf[6] != '.' {
		return 0, nil, Bad
	}
	if len(buf) < 8 {
		return 0, nil, Need
	}
	if !isDigit(buf[7]) {
		return 0, nil, Bad
	}
	return 8, buf[:8], 8
}

// newline parses a CRLF pair.
func newline(buf []byte) (n int, status int) {
	if len(buf) < 1 {
		return 0, Need
	}
	if buf[0] != '\r' {
		return 0, Bad
	}
	if len(buf) < 2 {
		return 0, Need
	}
	if buf[1] != '\n' {
		return 0, Bad
	}
	return 2, 2
}

// statusCode parses exactly three decimal digits.
func statusCode(buf []byte) (n int, code int, status int) {
	if len(buf) < 3 {
		return 0, 0, Need
	}
	if !isDigit(buf[0]) || !isDigit(buf[1]) || !isDigit(buf[2]) {
		return 0, 0, Bad
	}
	v := int(buf[0]-'0')*100 + int(buf[1]-'0')*10 + int(buf[2]-'0')
	return 3, v, 3
}

// reasonPhrase parses a run of SP/HTAB/VCHAR/obs-text, stopping (without
// consuming) at the first byte outside that set. It is total: any buffer,
// including an empty one, yields a valid (possibly zero-length) match.
func reasonPhrase(buf []byte) (n int, phrase []byte) {
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if c != ' ' && c != '\t' && !isVChar(c) && !isObsText(c) {
			return i, buf[:i]
		}
	}
	return len(buf), buf
}

// headerValue parses a field-value run (VCHAR/SP/HTAB/obs-text) followed
// by a terminating CRLF.
func headerValue(buf []byte) (n int, val []byte, status int) {
	length := len(buf)
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if !isVChar(c) && !isSpace(c) && !isObsText(c) {
			length = i
			break
		}
	}
	if len(buf)-length < 2 {
		return 0, nil, Need
	}
	if buf[length] != '\r' {
		return 0, nil, Bad
	}
	if buf[length+1] != '\n' {
		return 0, nil, Bad
	}
	return length + 2, buf[:length], length + 2
}

// stripSpace trims leading and trailing SP/HTAB bytes from buf.
func stripSpace(buf []byte) []byte {
	start := len(buf)
	for i := 0; i < len(buf); i++ {
		if !isSpace(buf[i]) {
			start = i
			break
		}
	}
	if start == len(buf) {
		return buf[len(buf):]
	}
	end := start
	for i := len(buf) - 1; i >= start; i-- {
		if !isSpace(buf[i]) {
			end = i + 1
			break
		}
	}
	return buf[start:end]
}

// absolutePath parses a leading '/' followed by zero or more pchar runs
// separated by '/', per RFC 3986 path-absolute, matching
// parse_absolute_path. The grammar itself is implemented by the path
// collaborator so the request-target and standalone path-validation
// call sites share one incremental parser.
func absolutePath(buf []byte) (n int, uri []byte, status int) {
	n, status = pathutil.ParseAbsolutePath(buf)
	if status < 0 {
		return 0, nil, status
	}
	return n, buf[:n], status
}

func toLowerASCII(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 32
		}
		out[i] = c
	}
	return out
}
