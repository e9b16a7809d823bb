package dynamic

import (
	"errors"
	"fmt"
)

// StructuralError representa um erro estrutural de validação, detectado
// sincronamente durante a compilação, nunca na execução contra o backend.
// Deve ser tratado pelo chamador como erro de entrada do cliente (HTTP 400),
// não como falha do servidor. Não há semântica de retry: nenhum erro
// estrutural é transitório.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return "dynamic: " + e.Reason
}

// IsStructural verifica se err é (ou envolve) um erro estrutural
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

func structuralf(format string, args ...any) error {
	return &StructuralError{Reason: fmt.Sprintf(format, args...)}
}
