package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/passlab/internal/account/inbound.(*Endpoint).Login(0xc000010000)
	/src/passlab/internal/account/inbound/http_endpoint.go:42 +0x1d
net/http.HandlerFunc.ServeHTTP(...)
	/usr/local/go/src/net/http/server.go:2220
`)

	assert.Equal(t, []string{"internal/account/inbound/http_endpoint.go:42"}, InternalPaths(stack))
	assert.Empty(t, InternalPaths([]byte("no frames here")))
}
