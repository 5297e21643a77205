package middleware

import (
	"net/http"
	"sync"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/common"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/scontext"
	"github.com/google/uuid"
)

// TraceHeader carries the trace ID of a call to the service.
const TraceHeader = "X-Request-ID"

// IDGenerator hands out precomputed UUIDs from a buffered channel that a
// background goroutine keeps filled.
type IDGenerator struct {
	idChan   chan string
	size     int
	stopChan chan struct{}
	stopOnce sync.Once
}

var (
	defaultGenerator     *IDGenerator
	defaultGeneratorOnce sync.Once
	defaultBufferSize    = 1024
)

// NewIDGenerator creates an IDGenerator with the given buffer size and starts
// its filler.
func NewIDGenerator(bufferSize int) *IDGenerator {
	if bufferSize < 1 {
		bufferSize = 1
	}
	g := &IDGenerator{
		idChan:   make(chan string, bufferSize),
		size:     bufferSize,
		stopChan: make(chan struct{}),
	}
	for i := 0; i < bufferSize; i++ {
		g.idChan <- uuid.New().String()
	}
	go g.fill()
	return g
}

// GetDefaultGenerator returns the shared IDGenerator.
func GetDefaultGenerator() *IDGenerator {
	defaultGeneratorOnce.Do(func() {
		defaultGenerator = NewIDGenerator(defaultBufferSize)
	})
	return defaultGenerator
}

// fill blocks on a full buffer until an ID is taken or the generator stops.
func (g *IDGenerator) fill() {
	for {
		id := uuid.New().String()
		select {
		case g.idChan <- id:
		case <-g.stopChan:
			return
		}
	}
}

// Stop halts the background filler. IDs remain available through
// GetIDNonBlocking, which falls back to generating on demand.
func (g *IDGenerator) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}

// GetIDNonBlocking returns a precomputed UUID, or a fresh one when the buffer
// is empty.
func (g *IDGenerator) GetIDNonBlocking() string {
	select {
	case id := <-g.idChan:
		return id
	default:
		return uuid.New().String()
	}
}

// Trace stamps every request with a trace ID. The ID already on the call
// context wins; otherwise one is drawn from generator and stored on the
// request context so later middleware can log it.
func Trace(generator *IDGenerator) Middleware {
	if generator == nil {
		generator = GetDefaultGenerator()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return common.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			traceID, ok := scontext.GetTraceIDFromRequest(r)
			if !ok {
				traceID = generator.GetIDNonBlocking()
			}
			r = r.Clone(scontext.WithTraceID(r.Context(), traceID))
			r.Header.Set(TraceHeader, traceID)
			return next.RoundTrip(r)
		})
	}
}
