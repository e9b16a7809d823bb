package repositories

// Page representa uma página de resultados entregue ao cliente.
// Index é baseado em zero; Count é o total de registros após o filtro,
// antes do fatiamento.
type Page[T any] struct {
	Index       int   `json:"index"`
	Size        int   `json:"size"`
	Count       int64 `json:"count"`
	Pages       int   `json:"pages"`
	Items       []T   `json:"items"`
	HasPrevious bool  `json:"hasPrevious"`
	HasNext     bool  `json:"hasNext"`
}

// NewPage monta uma página a partir dos itens já fatiados e do total
func NewPage[T any](items []T, index, size int, count int64) Page[T] {
	pages := 0
	if size > 0 {
		pages = int((count + int64(size) - 1) / int64(size))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Index:       index,
		Size:        size,
		Count:       count,
		Pages:       pages,
		Items:       items,
		HasPrevious: index > 0,
		HasNext:     index+1 < pages,
	}
}

// MapPage converte os itens de uma página preservando os metadados
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{
		Index:       p.Index,
		Size:        p.Size,
		Count:       p.Count,
		Pages:       p.Pages,
		Items:       items,
		HasPrevious: p.HasPrevious,
		HasNext:     p.HasNext,
	}
}
