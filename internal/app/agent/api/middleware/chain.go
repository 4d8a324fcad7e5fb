package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Chain собирает мидлвари группы операций в порядке вызова. nil пропускается,
// так отключенная мидлварь (например, токен без секрета) не попадает в цепочку.
func Chain(mws ...func(huma.Context, func(huma.Context))) huma.Middlewares {
	chain := make(huma.Middlewares, 0, len(mws))
	for _, mw := range mws {
		if mw != nil {
			chain = append(chain, mw)
		}
	}
	return chain
}
