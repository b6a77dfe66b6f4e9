package common

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items             []T  `json:"items"`
	TotalItens        int  `json:"total_itens"`
	Pagina            int  `json:"pagina"`
	ItensPorPagina    int  `json:"itens_por_pagina"`
	TotalPaginas      int  `json:"total_paginas"`
	TemProximaPagina  bool `json:"tem_proxima_pagina"`
	TemPaginaAnterior bool `json:"tem_pagina_anterior"`
}

func NewPage[T any](items []T, total, pagina, itensPorPagina int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPaginas := 0
	if itensPorPagina > 0 {
		totalPaginas = (total + itensPorPagina - 1) / itensPorPagina
	}
	return Page[T]{
		Items:             items,
		TotalItens:        total,
		Pagina:            pagina,
		ItensPorPagina:    itensPorPagina,
		TotalPaginas:      totalPaginas,
		TemProximaPagina:  pagina < totalPaginas,
		TemPaginaAnterior: pagina > 1,
	}
}
