package buffer

import "github.com/valyala/bytebufferpool"

// DefaultChunkSize is the read chunk size used by the reactor server and
// client socket when filling scratch buffers from a ready file descriptor.
const DefaultChunkSize = 1024

var scratchPool bytebufferpool.Pool

// GetScratch returns a pooled scratch buffer sized to at least
// DefaultChunkSize. Callers must return it via PutScratch once the bytes
// read into it have been copied into a connection's accumulation buffer.
func GetScratch() *bytebufferpool.ByteBuffer {
	buf := scratchPool.Get()
	if cap(buf.B) < DefaultChunkSize {
		buf.B = make([]byte, DefaultChunkSize)
	}
	buf.B = buf.B[:DefaultChunkSize]
	return buf
}

// PutScratch returns a scratch buffer obtained from GetScratch to the pool.
func PutScratch(buf *bytebufferpool.ByteBuffer) {
	scratchPool.Put(buf)
}
