package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/querypro-backend/internal/domain/dynamic"
)

// applyDynamicFilter traduz o predicado compilado em cláusulas GORM e o
// anexa à consulta, de modo que o banco avalie o filtro (push-down) em vez
// de materializar os registros em memória. Os nomes de coluna vêm do schema
// do repositório, nunca da entrada do cliente; os valores são sempre
// parâmetros posicionais.
func applyDynamicFilter(db *gorm.DB, c *dynamic.Compiled) (*gorm.DB, error) {
	if c.Expr == nil {
		return db, nil
	}
	cond, err := renderExpr(c.Expr, c)
	if err != nil {
		return nil, err
	}
	return db.Where(cond), nil
}

// applyDynamicOrder anexa a ordenação compilada (multi-chave, critérios
// anteriores têm precedência)
func applyDynamicOrder(db *gorm.DB, c *dynamic.Compiled) *gorm.DB {
	for _, o := range c.Orders {
		def := c.Schema[o.Field]
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: def.Column},
			Desc:   o.Desc,
		})
	}
	return db
}

// renderExpr converte um nó da expressão em uma clause.Expression
func renderExpr(e dynamic.Expr, c *dynamic.Compiled) (clause.Expression, error) {
	switch n := e.(type) {
	case dynamic.Comparison:
		def := c.Schema[n.Field]
		value, err := def.Parse(c.Params[n.Index])
		if err != nil {
			return nil, err
		}
		col := clause.Column{Name: def.Column}
		switch n.Op {
		case dynamic.CompareEq:
			return clause.Eq{Column: col, Value: value}, nil
		case dynamic.CompareNeq:
			return clause.Neq{Column: col, Value: value}, nil
		case dynamic.CompareLt:
			return clause.Lt{Column: col, Value: value}, nil
		case dynamic.CompareLte:
			return clause.Lte{Column: col, Value: value}, nil
		case dynamic.CompareGt:
			return clause.Gt{Column: col, Value: value}, nil
		case dynamic.CompareGte:
			return clause.Gte{Column: col, Value: value}, nil
		default:
			return nil, fmt.Errorf("unknown comparison op %d", n.Op)
		}

	case dynamic.NullCheck:
		def := c.Schema[n.Field]
		col := clause.Column{Name: def.Column}
		if n.Negate {
			return clause.Neq{Column: col, Value: nil}, nil
		}
		return clause.Eq{Column: col, Value: nil}, nil

	case dynamic.Match:
		def := c.Schema[n.Field]
		value := c.Params[n.Index]

		var pattern string
		switch n.Kind {
		case dynamic.MatchPrefix:
			pattern = escapeLike(value) + "%"
		case dynamic.MatchSuffix:
			pattern = "%" + escapeLike(value)
		case dynamic.MatchSubstring:
			pattern = "%" + escapeLike(value) + "%"
		}

		// ESCAPE explícito: o escape de curingas em escapeLike vale em
		// qualquer backend, não só onde '\' é o escape default do LIKE
		var expr clause.Expression
		if n.CaseSensitive {
			expr = clause.Expr{
				SQL:  def.Column + ` LIKE ? ESCAPE '\'`,
				Vars: []any{pattern},
			}
		} else {
			// Dobra de caixa dos dois lados, portável entre backends
			expr = clause.Expr{
				SQL:  "lower(" + def.Column + `) LIKE ? ESCAPE '\'`,
				Vars: []any{strings.ToLower(pattern)},
			}
		}
		if n.Negate {
			// Coluna nula satisfaz a negação, como no avaliador em memória;
			// sem o IS NULL o NOT LIKE avaliaria para NULL e excluiria a linha
			return clause.Or(
				clause.Eq{Column: clause.Column{Name: def.Column}, Value: nil},
				clause.Not(expr),
			), nil
		}
		return expr, nil

	case dynamic.Membership:
		def := c.Schema[n.Field]
		parts := strings.Split(c.Params[n.Index], ",")
		values := make([]any, len(parts))
		for i, part := range parts {
			value, err := def.Parse(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return clause.IN{Column: clause.Column{Name: def.Column}, Values: values}, nil

	case dynamic.Range:
		def := c.Schema[n.Field]
		parts := strings.Split(c.Params[n.Index], ",")
		lower, err := def.Parse(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, err
		}
		upper, err := def.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, err
		}
		col := clause.Column{Name: def.Column}
		return clause.And(
			clause.Gte{Column: col, Value: lower},
			clause.Lte{Column: col, Value: upper},
		), nil

	case dynamic.Group:
		exprs := make([]clause.Expression, len(n.Exprs))
		for i, sub := range n.Exprs {
			rendered, err := renderExpr(sub, c)
			if err != nil {
				return nil, err
			}
			exprs[i] = rendered
		}
		if n.Logic == dynamic.LogicOr {
			return clause.Or(exprs...), nil
		}
		return clause.And(exprs...), nil

	default:
		return nil, fmt.Errorf("unknown expression node %T", e)
	}
}

// escapeLike escapa curingas do LIKE no padrão, preservando a semântica de
// substring literal
func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, "%", `\%`)
	value = strings.ReplaceAll(value, "_", `\_`)
	return value
}
