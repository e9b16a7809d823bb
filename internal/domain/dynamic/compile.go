package dynamic

import "strings"

// Compiled é o resultado da compilação de uma Query contra um Schema.
// Expr nil significa "sem restrição"; Orders vazio preserva a ordem da fonte.
// Params contém os valores originais (não modificados) de cada nó achatado,
// na ordem dos índices, prontos para serem passados ao backend como
// parâmetros opacos. Um Compiled não é modificado depois de construído e
// pode ser usado por múltiplas goroutines.
type Compiled struct {
	Expr   Expr
	Params []string
	Orders []Order
	Schema Schema
}

// Order é um critério de ordenação compilado e validado
type Order struct {
	Field string
	Desc  bool
}

// Compile valida e compila uma consulta dinâmica. Toda a validação
// estrutural acontece aqui, antes de qualquer interação com a fonte de
// dados: campo vazio ou fora do schema, operador desconhecido, conectivo
// inválido, direção de ordenação inválida, intervalo malformado e valor que
// não converte para o tipo do campo são todos erros estruturais. A
// compilação é tudo-ou-nada: o primeiro erro aborta sem resultado parcial.
func Compile(q Query, schema Schema) (*Compiled, error) {
	c := &Compiled{Schema: schema}

	if q.Filter != nil {
		flat := Flatten(q.Filter)
		c.Params = Params(flat)

		pos := 0
		expr, err := compileNode(q.Filter, schema, &pos)
		if err != nil {
			return nil, err
		}
		c.Expr = expr
	}

	orders, err := CompileSort(q.Sort, schema)
	if err != nil {
		return nil, err
	}
	c.Orders = orders

	return c, nil
}

// compileNode compila um nó recursivamente. O contador pos percorre a árvore
// em pré-ordem, na mesma ordem de Flatten, de modo que o índice atribuído a
// cada nó coincide com a posição dele na lista achatada — inclusive através
// de chamadas aninhadas.
func compileNode(f *Filter, schema Schema, pos *int) (Expr, error) {
	idx := *pos
	*pos++

	if strings.TrimSpace(f.Field) == "" {
		return nil, structuralf("filter field must not be empty")
	}

	op, ok := operators[f.Operator]
	if !ok {
		return nil, structuralf("unknown operator %q", f.Operator)
	}

	def, err := schema.resolve(f.Field)
	if err != nil {
		return nil, err
	}

	own, err := compileLeaf(f, op, def, idx)
	if err != nil {
		return nil, err
	}

	if len(f.Filters) == 0 {
		// Nó folha sem valor renderizável e sem teste de nulidade: sem
		// restrição (own == nil); o chamador trata como "sempre verdadeiro".
		return own, nil
	}

	if f.Logic != LogicAnd && f.Logic != LogicOr {
		return nil, structuralf("filter with children requires logic %q or %q, got %q", LogicAnd, LogicOr, f.Logic)
	}

	exprs := make([]Expr, 0, 1+len(f.Filters))
	if own != nil {
		exprs = append(exprs, own)
	}
	for i := range f.Filters {
		child, err := compileNode(&f.Filters[i], schema, pos)
		if err != nil {
			return nil, err
		}
		if child != nil {
			exprs = append(exprs, child)
		}
	}

	switch len(exprs) {
	case 0:
		return nil, nil
	case 1:
		return exprs[0], nil
	default:
		return Group{Logic: f.Logic, Exprs: exprs}, nil
	}
}

// compileLeaf renderiza a expressão do próprio nó (sem os filhos)
func compileLeaf(f *Filter, op opInfo, def FieldDef, idx int) (Expr, error) {
	if op.kind == opNull {
		return NullCheck{Field: f.Field, Negate: op.negate}, nil
	}

	if f.Value == nil {
		// Operador exige valor mas nenhum foi enviado: nó sem restrição
		return nil, nil
	}
	raw := *f.Value

	switch op.kind {
	case opCompare:
		if !def.ordered() && op.cmp != CompareEq && op.cmp != CompareNeq {
			return nil, structuralf("field %q does not support relational comparison", f.Field)
		}
		if _, err := def.Parse(raw); err != nil {
			return nil, err
		}
		return Comparison{Field: f.Field, Op: op.cmp, Index: idx}, nil

	case opMatch:
		if def.Kind != KindString {
			return nil, structuralf("operator %q requires a string field, %q is not", f.Operator, f.Field)
		}
		return Match{
			Field:         f.Field,
			Kind:          op.match,
			Index:         idx,
			CaseSensitive: f.CaseSensitive,
			Negate:        op.negate,
		}, nil

	case opIn:
		for _, part := range splitList(raw) {
			if _, err := def.Parse(part); err != nil {
				return nil, err
			}
		}
		return Membership{Field: f.Field, Index: idx}, nil

	case opBetween:
		parts := splitList(raw)
		if len(parts) != 2 {
			return nil, structuralf("operator between requires exactly two comma-separated bounds, got %d", len(parts))
		}
		for _, part := range parts {
			if _, err := def.Parse(part); err != nil {
				return nil, err
			}
		}
		return Range{Field: f.Field, Index: idx}, nil
	}

	return nil, structuralf("unknown operator %q", f.Operator)
}

// CompileSort valida e compila a lista ordenada de critérios de ordenação.
// Critérios anteriores têm precedência sobre os posteriores (ordenação
// multi-chave estável). Lista vazia compila para ausência de diretiva.
func CompileSort(sorts []Sort, schema Schema) ([]Order, error) {
	if len(sorts) == 0 {
		return nil, nil
	}

	orders := make([]Order, len(sorts))
	for i, s := range sorts {
		if strings.TrimSpace(s.Field) == "" {
			return nil, structuralf("sort field must not be empty")
		}
		if _, err := schema.resolve(s.Field); err != nil {
			return nil, err
		}
		switch s.Dir {
		case DirAsc:
			orders[i] = Order{Field: s.Field}
		case DirDesc:
			orders[i] = Order{Field: s.Field, Desc: true}
		default:
			return nil, structuralf("sort dir must be %q or %q, got %q", DirAsc, DirDesc, s.Dir)
		}
	}
	return orders, nil
}

// splitList separa uma lista literal por vírgulas, aparando espaços
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
