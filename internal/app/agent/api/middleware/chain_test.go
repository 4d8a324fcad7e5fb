package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	pass := func(ctx huma.Context, next func(huma.Context)) { next(ctx) }

	assert.Len(t, Chain(), 0)
	assert.Len(t, Chain(pass, nil, pass), 2)
	assert.Len(t, Chain(nil), 0)
}
