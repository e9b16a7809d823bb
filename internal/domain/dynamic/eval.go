package dynamic

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Matches avalia o predicado compilado contra um registro em memória usando
// reflexão sobre os campos declarados no Schema. Expr nil significa sem
// restrição: todo registro passa. rec pode ser struct ou ponteiro de struct.
func (c *Compiled) Matches(rec any) (bool, error) {
	if c.Expr == nil {
		return true, nil
	}

	rv := reflect.ValueOf(rec)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false, fmt.Errorf("cannot evaluate filter against nil record")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return false, fmt.Errorf("cannot evaluate filter against %s record", rv.Kind())
	}

	return c.eval(c.Expr, rv)
}

func (c *Compiled) eval(e Expr, rv reflect.Value) (bool, error) {
	switch n := e.(type) {
	case Comparison:
		return c.evalComparison(n, rv)
	case NullCheck:
		def, err := c.Schema.resolve(n.Field)
		if err != nil {
			return false, err
		}
		_, present, err := fieldValue(rv, def)
		if err != nil {
			return false, err
		}
		if n.Negate {
			return present, nil
		}
		return !present, nil
	case Match:
		return c.evalMatch(n, rv)
	case Membership:
		return c.evalMembership(n, rv)
	case Range:
		return c.evalRange(n, rv)
	case Group:
		for _, sub := range n.Exprs {
			ok, err := c.eval(sub, rv)
			if err != nil {
				return false, err
			}
			if n.Logic == LogicOr && ok {
				return true, nil
			}
			if n.Logic == LogicAnd && !ok {
				return false, nil
			}
		}
		return n.Logic == LogicAnd, nil
	default:
		return false, fmt.Errorf("unknown expression node %T", e)
	}
}

func (c *Compiled) evalComparison(n Comparison, rv reflect.Value) (bool, error) {
	def, err := c.Schema.resolve(n.Field)
	if err != nil {
		return false, err
	}
	fv, present, err := fieldValue(rv, def)
	if err != nil {
		return false, err
	}
	if !present {
		// Campo nulo nunca satisfaz uma comparação relacional
		return false, nil
	}

	want, err := def.Parse(c.Params[n.Index])
	if err != nil {
		return false, err
	}
	cmp, err := compareTyped(def.Kind, fv, want)
	if err != nil {
		return false, err
	}

	switch n.Op {
	case CompareEq:
		return cmp == 0, nil
	case CompareNeq:
		return cmp != 0, nil
	case CompareLt:
		return cmp < 0, nil
	case CompareLte:
		return cmp <= 0, nil
	case CompareGt:
		return cmp > 0, nil
	case CompareGte:
		return cmp >= 0, nil
	default:
		return false, fmt.Errorf("unknown comparison op %d", n.Op)
	}
}

func (c *Compiled) evalMatch(n Match, rv reflect.Value) (bool, error) {
	def, err := c.Schema.resolve(n.Field)
	if err != nil {
		return false, err
	}
	fv, present, err := fieldValue(rv, def)
	if err != nil {
		return false, err
	}

	matched := false
	if present {
		s := fv.String()
		sub := c.Params[n.Index]
		if !n.CaseSensitive {
			s = strings.ToLower(s)
			sub = strings.ToLower(sub)
		}
		switch n.Kind {
		case MatchPrefix:
			matched = strings.HasPrefix(s, sub)
		case MatchSuffix:
			matched = strings.HasSuffix(s, sub)
		case MatchSubstring:
			matched = strings.Contains(s, sub)
		}
	}
	return matched != n.Negate, nil
}

func (c *Compiled) evalMembership(n Membership, rv reflect.Value) (bool, error) {
	def, err := c.Schema.resolve(n.Field)
	if err != nil {
		return false, err
	}
	fv, present, err := fieldValue(rv, def)
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}

	for _, part := range splitList(c.Params[n.Index]) {
		want, err := def.Parse(part)
		if err != nil {
			return false, err
		}
		cmp, err := compareTyped(def.Kind, fv, want)
		if err != nil {
			return false, err
		}
		if cmp == 0 {
			return true, nil
		}
	}
	return false, nil
}

func (c *Compiled) evalRange(n Range, rv reflect.Value) (bool, error) {
	def, err := c.Schema.resolve(n.Field)
	if err != nil {
		return false, err
	}
	fv, present, err := fieldValue(rv, def)
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}

	parts := splitList(c.Params[n.Index])
	lower, err := def.Parse(parts[0])
	if err != nil {
		return false, err
	}
	upper, err := def.Parse(parts[1])
	if err != nil {
		return false, err
	}

	cmpLo, err := compareTyped(def.Kind, fv, lower)
	if err != nil {
		return false, err
	}
	cmpHi, err := compareTyped(def.Kind, fv, upper)
	if err != nil {
		return false, err
	}
	// Intervalo inclusivo dos dois lados
	return cmpLo >= 0 && cmpHi <= 0, nil
}

// fieldValue localiza o campo Go de um registro. Ponteiro nil conta como
// valor ausente (nulo); o segundo retorno indica presença.
func fieldValue(rv reflect.Value, def FieldDef) (reflect.Value, bool, error) {
	if def.Attr == "" {
		return reflect.Value{}, false, fmt.Errorf("field mapped to column %q is not addressable in memory", def.Column)
	}
	fv := rv.FieldByName(def.Attr)
	if !fv.IsValid() {
		return reflect.Value{}, false, fmt.Errorf("record type %s has no field %q", rv.Type(), def.Attr)
	}
	for fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return reflect.Value{}, false, nil
		}
		fv = fv.Elem()
	}
	return fv, true, nil
}

// compareTyped compara o valor de um campo com um valor já convertido,
// retornando <0, 0 ou >0 no estilo de strings.Compare
func compareTyped(kind Kind, fv reflect.Value, want any) (int, error) {
	switch kind {
	case KindString:
		w, ok := want.(string)
		if !ok {
			return 0, fmt.Errorf("expected string value, got %T", want)
		}
		return strings.Compare(fv.String(), w), nil

	case KindInt:
		w, ok := want.(int64)
		if !ok {
			return 0, fmt.Errorf("expected integer value, got %T", want)
		}
		var v int64
		switch fv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v = fv.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v = int64(fv.Uint())
		default:
			return 0, fmt.Errorf("field %s is not an integer", fv.Type())
		}
		switch {
		case v < w:
			return -1, nil
		case v > w:
			return 1, nil
		default:
			return 0, nil
		}

	case KindFloat:
		w, ok := want.(float64)
		if !ok {
			return 0, fmt.Errorf("expected float value, got %T", want)
		}
		var v float64
		switch fv.Kind() {
		case reflect.Float32, reflect.Float64:
			v = fv.Float()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v = float64(fv.Int())
		default:
			return 0, fmt.Errorf("field %s is not a number", fv.Type())
		}
		switch {
		case v < w:
			return -1, nil
		case v > w:
			return 1, nil
		default:
			return 0, nil
		}

	case KindBool:
		w, ok := want.(bool)
		if !ok {
			return 0, fmt.Errorf("expected boolean value, got %T", want)
		}
		if fv.Kind() != reflect.Bool {
			return 0, fmt.Errorf("field %s is not a boolean", fv.Type())
		}
		switch {
		case fv.Bool() == w:
			return 0, nil
		case !fv.Bool():
			return -1, nil
		default:
			return 1, nil
		}

	case KindTime:
		w, ok := want.(time.Time)
		if !ok {
			return 0, fmt.Errorf("expected time value, got %T", want)
		}
		v, ok := fv.Interface().(time.Time)
		if !ok {
			return 0, fmt.Errorf("field %s is not a time.Time", fv.Type())
		}
		switch {
		case v.Before(w):
			return -1, nil
		case v.After(w):
			return 1, nil
		default:
			return 0, nil
		}

	default:
		return 0, fmt.Errorf("unknown field kind %d", kind)
	}
}
