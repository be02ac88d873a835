package badger

import (
	"encoding/binary"

	"github.com/poiesic/essaysearch/core"
)

// Key prefixes for different data types
const (
	responsePrefix = "resp"
)

// makeResponseKey generates a key for a cached search response.
// Format: prefix:id
func makeResponseKey(id core.ID) []byte {
	prefix := responsePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
