package dynamic

// CompareOp enumera as comparações relacionais diretas
type CompareOp int

const (
	CompareEq CompareOp = iota
	CompareNeq
	CompareLt
	CompareLte
	CompareGt
	CompareGte
)

// MatchKind enumera os testes de substring
type MatchKind int

const (
	MatchPrefix MatchKind = iota
	MatchSuffix
	MatchSubstring
)

// Expr é a união etiquetada de expressões compiladas. O compilador produz
// esta árvore em vez de texto de consulta: ela é agnóstica de backend, pode
// ser comparada estruturalmente em testes e é avaliada por um interpretador
// em memória ou traduzida por um renderizador específico do backend.
// Os nós referenciam valores apenas pelo índice de parâmetro (Index), nunca
// carregam o texto do valor dentro da expressão.
type Expr interface {
	isExpr()
}

// Comparison é uma comparação relacional campo vs. parâmetro
type Comparison struct {
	Field string
	Op    CompareOp
	Index int
}

// NullCheck é o teste unário de nulidade de um campo
type NullCheck struct {
	Field  string
	Negate bool
}

// Match é um teste de substring (prefixo, sufixo ou contém), com dobra de
// caixa quando CaseSensitive é false e negação para doesnotcontain
type Match struct {
	Field         string
	Kind          MatchKind
	Index         int
	CaseSensitive bool
	Negate        bool
}

// Membership testa pertencimento do campo à lista literal separada por
// vírgulas no parâmetro indicado (sem dobra de caixa)
type Membership struct {
	Field string
	Index int
}

// Range é o teste de intervalo inclusivo de dois lados; o parâmetro indicado
// contém exatamente dois limites separados por vírgula
type Range struct {
	Field string
	Index int
}

// Group combina sub-expressões com um conectivo lógico explícito
type Group struct {
	Logic string
	Exprs []Expr
}

func (Comparison) isExpr() {}
func (NullCheck) isExpr()  {}
func (Match) isExpr()      {}
func (Membership) isExpr() {}
func (Range) isExpr()      {}
func (Group) isExpr()      {}
