package dynamic

// Valores aceitos para o conectivo lógico de um Filter
const (
	LogicAnd = "and"
	LogicOr  = "or"
)

// Valores aceitos para a direção de um Sort
const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// Filter representa um nó da árvore de filtros dinâmicos enviada pelo cliente.
// Cada nó compara um campo com um valor usando um operador; nós com filhos
// combinam as sub-expressões com o conectivo Logic. É um value object
// imutável: construído uma vez por requisição (via JSON) e nunca modificado.
type Filter struct {
	Field         string   `json:"field"`
	Operator      string   `json:"operator"`
	Value         *string  `json:"value,omitempty"`
	Logic         string   `json:"logic,omitempty"`
	CaseSensitive bool     `json:"caseSensitive,omitempty"`
	Filters       []Filter `json:"filters,omitempty"`
}

// Sort representa um critério de ordenação
type Sort struct {
	Field string `json:"field"`
	Dir   string `json:"dir"`
}

// Query representa a consulta dinâmica completa enviada pelo cliente.
// Filter e Sort são opcionais; ausentes, a consulta é a transformação
// identidade (sem restrição e sem ordenação).
type Query struct {
	Filter *Filter `json:"filter,omitempty"`
	Sort   []Sort  `json:"sort,omitempty"`
}
