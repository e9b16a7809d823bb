package dynamic

import (
	"fmt"
	"reflect"
	"sort"
	"time"
)

// Apply aplica o predicado e a ordenação compilados a uma fatia em memória:
// primeiro filtra, depois ordena de forma estável pelas chaves compiladas
// (critérios anteriores têm precedência; registros empatados preservam a
// ordem da fonte). É o aplicador para fontes sem capacidade de push-down; o
// caminho consultável fica no renderizador do backend.
func Apply[T any](c *Compiled, items []T) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		ok, err := c.Matches(item)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}

	if len(c.Orders) == 0 {
		return out, nil
	}

	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		cmp, err := c.compareRecords(out[i], out[j])
		if err != nil {
			sortErr = err
			return false
		}
		return cmp < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return out, nil
}

// compareRecords compara dois registros pelas chaves de ordenação compiladas
func (c *Compiled) compareRecords(a, b any) (int, error) {
	ra, err := derefStruct(a)
	if err != nil {
		return 0, err
	}
	rb, err := derefStruct(b)
	if err != nil {
		return 0, err
	}

	for _, o := range c.Orders {
		def, err := c.Schema.resolve(o.Field)
		if err != nil {
			return 0, err
		}

		fa, presentA, err := fieldValue(ra, def)
		if err != nil {
			return 0, err
		}
		fb, presentB, err := fieldValue(rb, def)
		if err != nil {
			return 0, err
		}

		var cmp int
		switch {
		case !presentA && !presentB:
			cmp = 0
		case !presentA:
			cmp = -1
		case !presentB:
			cmp = 1
		default:
			wb, err := nativeValue(def.Kind, fb)
			if err != nil {
				return 0, err
			}
			cmp, err = compareTyped(def.Kind, fa, wb)
			if err != nil {
				return 0, err
			}
		}

		if cmp != 0 {
			if o.Desc {
				return -cmp, nil
			}
			return cmp, nil
		}
	}
	return 0, nil
}

func derefStruct(rec any) (reflect.Value, error) {
	rv := reflect.ValueOf(rec)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("cannot sort nil record")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("cannot sort %s record", rv.Kind())
	}
	return rv, nil
}

// nativeValue extrai o valor Go nativo de um campo conforme o Kind declarado
func nativeValue(kind Kind, fv reflect.Value) (any, error) {
	switch kind {
	case KindString:
		return fv.String(), nil
	case KindInt:
		switch fv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return fv.Int(), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return int64(fv.Uint()), nil
		}
		return nil, fmt.Errorf("field %s is not an integer", fv.Type())
	case KindFloat:
		switch fv.Kind() {
		case reflect.Float32, reflect.Float64:
			return fv.Float(), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(fv.Int()), nil
		}
		return nil, fmt.Errorf("field %s is not a number", fv.Type())
	case KindBool:
		if fv.Kind() != reflect.Bool {
			return nil, fmt.Errorf("field %s is not a boolean", fv.Type())
		}
		return fv.Bool(), nil
	case KindTime:
		v, ok := fv.Interface().(time.Time)
		if !ok {
			return nil, fmt.Errorf("field %s is not a time.Time", fv.Type())
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown field kind %d", kind)
	}
}
