package dynamic

import (
	"fmt"
	"strconv"
	"time"
)

// Kind indica o tipo de valor de um campo filtrável
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
)

// FieldDef descreve um campo exposto para filtros e ordenação.
// Column é o nome da coluna no backend consultável; Attr é o nome do campo
// Go correspondente para avaliação em memória; Kind determina como os valores
// recebidos como string são convertidos.
type FieldDef struct {
	Column string
	Attr   string
	Kind   Kind
}

// Schema é a allow-list de campos que o cliente pode referenciar em filtros
// e ordenações. A compilação rejeita qualquer campo fora do schema, portanto
// nomes de coluna nunca vêm de entrada do cliente.
type Schema map[string]FieldDef

func (s Schema) resolve(name string) (FieldDef, error) {
	def, ok := s[name]
	if !ok {
		return FieldDef{}, structuralf("field %q is not filterable", name)
	}
	return def, nil
}

// Parse converte um valor recebido como string para o tipo do campo.
// Valores que não convertem são erros estruturais, detectados na compilação,
// antes de qualquer I/O.
func (d FieldDef) Parse(raw string) (any, error) {
	switch d.Kind {
	case KindString:
		return raw, nil
	case KindInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, structuralf("value %q is not a valid integer", raw)
		}
		return v, nil
	case KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, structuralf("value %q is not a valid number", raw)
		}
		return v, nil
	case KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, structuralf("value %q is not a valid boolean", raw)
		}
		return v, nil
	case KindTime:
		v, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, structuralf("value %q is not a valid RFC 3339 timestamp", raw)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown field kind %d", d.Kind)
	}
}

// ordered informa se o tipo do campo admite comparação relacional (lt, gt...)
func (d FieldDef) ordered() bool {
	return d.Kind != KindBool
}
