package dynamic

// Flatten achata a árvore de filtros em pré-ordem: a raiz primeiro, depois a
// subárvore de cada filho na ordem de declaração. A posição de um nó na fatia
// resultante é o seu índice de parâmetro, usado pelo compilador para associar
// o Value do nó a um slot posicional. O resultado é determinístico: a mesma
// árvore produz sempre o mesmo achatamento.
func Flatten(f *Filter) []*Filter {
	if f == nil {
		return nil
	}

	flat := make([]*Filter, 0, 1+len(f.Filters))
	flat = append(flat, f)
	for i := range f.Filters {
		flat = append(flat, Flatten(&f.Filters[i])...)
	}
	return flat
}

// Params extrai os valores de parâmetro na ordem do achatamento. Nós sem
// Value ocupam o slot com string vazia para preservar o alinhamento dos
// índices. Os valores são repassados ao backend como parâmetros opacos e
// nunca interpolados no texto de nenhuma expressão.
func Params(flat []*Filter) []string {
	params := make([]string, len(flat))
	for i, node := range flat {
		if node.Value != nil {
			params[i] = *node.Value
		}
	}
	return params
}
