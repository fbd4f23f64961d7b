package httpwire

// Request is a parsed HTTP request message. Method, URI, and Version are
// allocated strings copied out of the wire bytes; Headers preserves
// insertion order and duplicates.
type Request struct {
	Method  string
	URI     string
	Version string
	Headers *Header
}

// parseRequestLine parses "method SP absolute-path SP version CRLF".
func parseRequestLine(buf []byte) (n int, method, uri, version []byte, status int) {
	acc := 0
	rest := buf

	mn, m, st := token(rest)
	if st < 0 {
		return 0, nil, nil, nil, st
	}
	acc += mn
	rest = rest[mn:]

	if len(rest) < 1 {
		return 0, nil, nil, nil, Need
	}
	if rest[0] != ' ' {
		return 0, nil, nil, nil, Bad
	}
	acc++
	rest = rest[1:]

	un, u, st := absolutePath(rest)
	if st < 0 {
		return 0, nil, nil, nil, st
	}
	acc += un
	rest = rest[un:]

	if len(rest) < 1 {
		return 0, nil, nil, nil, Need
	}
	if rest[0] != ' ' {
		return 0, nil, nil, nil, Bad
	}
	acc++
	rest = rest[1:]

	vn, v, st := httpVersion(rest)
	if st < 0 {
		return 0, nil, nil, nil, st
	}
	acc += vn
	rest = rest[vn:]

	nn, st := newline(rest)
	if st < 0 {
		return 0, nil, nil, nil, st
	}
	acc += nn

	return acc, m, u, v, acc
}

// parseHeaders parses a run of header-line entries terminated by a blank
// CRLF line, storing each parsed entry into headers with a lowercased,
// whitespace-stripped key and a whitespace-stripped value.
//
// The original core built each header's key/value locally in this loop
// but never added the entry to the headers collection before looping to
// the next line, silently discarding every parsed header. This
// implementation stores each entry as it is parsed.
func parseHeaders(buf []byte, headers *Header) (n int, status int) {
	acc := 0
	rest := buf
	for {
		kn, key, st := token(rest)
		if st == Bad {
			nn, st := newline(rest)
			if st < 0 {
				return 0, st
			}
			return acc + nn, acc + nn
		}
		if st == Need {
			return 0, Need
		}
		lineRest := rest[kn:]

		if len(lineRest) < 1 {
			return 0, Need
		}
		if lineRest[0] != ':' {
			return 0, Bad
		}
		lineRest = lineRest[1:]

		vn, value, st := headerValue(lineRest)
		if st < 0 {
			return 0, st
		}

		consumed := kn + 1 + vn
		headers.Add(string(toLowerASCII(key)), string(stripSpace(value)))

		acc += consumed
		rest = rest[consumed:]
	}
}

// ParseRequest incrementally parses an HTTP request from buf. It returns
// the number of bytes consumed from buf on success, or one of Incomplete
// (more bytes needed) / BadRequest (malformed) otherwise.
func ParseRequest(buf []byte) (*Request, int) {
	rn, method, uri, version, st := parseRequestLine(buf)
	if st == Need {
		return nil, Incomplete
	}
	if st == Bad {
		return nil, BadRequest
	}

	req := &Request{
		Method:  string(method),
		URI:     string(uri),
		Version: string(version),
		Headers: NewHeader(),
	}

	hn, st := parseHeaders(buf[rn:], req.Headers)
	if st == Need {
		return nil, Incomplete
	}
	if st == Bad {
		return nil, BadRequest
	}

	return req, rn + hn
}
