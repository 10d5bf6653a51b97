package utils

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/atomic"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// NewULID returns a time-sortable identifier. IDs generated within the same
// millisecond stay lexicographically increasing.
func NewULID() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), mono)
	if err != nil {
		// Only possible if the monotonic entropy overflows within one millisecond.
		panic(err)
	}
	return id.String()
}

// NewClientOrderID returns an id usable as a FIX ClOrdID (11) or REST order
// label: "<prefix>_<ulid>", or a bare ULID when prefix is empty.
func NewClientOrderID(prefix string) string {
	if prefix == "" {
		return NewULID()
	}
	return prefix + "_" + NewULID()
}

// RequestIDs hands out increasing JSON-RPC request ids. The zero value starts
// at 1 and is safe for concurrent use.
type RequestIDs struct {
	last atomic.Uint64
}

// Next returns the next request id.
func (r *RequestIDs) Next() uint64 {
	return r.last.Inc()
}
