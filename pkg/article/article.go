// Package article genera los identificadores numéricos únicos ("artículos")
// que llevan productos y pedidos de suministro.
package article

import (
	"fmt"
	"math/rand"
)

const (
	min = 10_000_000
	max = 99_999_999

	// maxAttempts corta la búsqueda si el espacio de artículos está
	// anormalmente saturado en vez de iterar para siempre.
	maxAttempts = 25
)

// ExistsFunc consulta si un artículo ya está en uso (normalmente contra la DB,
// dentro de la misma transacción que va a persistir el artículo).
type ExistsFunc func(article int64) (bool, error)

// Generate devuelve un artículo de 8 dígitos que exists reporta como libre.
func Generate(exists ExistsFunc) (int64, error) {
	for i := 0; i < maxAttempts; i++ {
		candidate := min + rand.Int63n(max-min+1)
		used, err := exists(candidate)
		if err != nil {
			return 0, fmt.Errorf("verificar artículo %d: %w", candidate, err)
		}
		if !used {
			return candidate, nil
		}
	}
	return 0, fmt.Errorf("no se encontró artículo libre tras %d intentos", maxAttempts)
}
