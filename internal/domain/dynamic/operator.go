package dynamic

// opKind classifica o formato de saída de cada operador
type opKind int

const (
	opCompare opKind = iota
	opNull
	opMatch
	opIn
	opBetween
)

// opInfo descreve um operador: classe e detalhes de renderização.
// Adicionar um operador é adicionar uma entrada na tabela.
type opInfo struct {
	kind   opKind
	cmp    CompareOp
	match  MatchKind
	negate bool
}

// operators é o vocabulário fixo de operadores aceitos em Filter.Operator
var operators = map[string]opInfo{
	"eq":  {kind: opCompare, cmp: CompareEq},
	"neq": {kind: opCompare, cmp: CompareNeq},
	"lt":  {kind: opCompare, cmp: CompareLt},
	"lte": {kind: opCompare, cmp: CompareLte},
	"gt":  {kind: opCompare, cmp: CompareGt},
	"gte": {kind: opCompare, cmp: CompareGte},

	// Testes unários: Value é ignorado se presente
	"isnull":    {kind: opNull},
	"isnotnull": {kind: opNull, negate: true},

	"startswith":     {kind: opMatch, match: MatchPrefix},
	"endswith":       {kind: opMatch, match: MatchSuffix},
	"contains":       {kind: opMatch, match: MatchSubstring},
	"doesnotcontain": {kind: opMatch, match: MatchSubstring, negate: true},

	"in":      {kind: opIn},
	"between": {kind: opBetween},
}
