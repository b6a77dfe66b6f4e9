package medicamento

import (
	"context"
	"sort"
	"time"

	"meusmedicamentos/application/common"
	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"

	"golang.org/x/sync/errgroup"
)

const maxMedicamentosAlerta = 10

// ============================================================================
// Queries
// ============================================================================

type ObterMedicamento struct {
	ID int
}

func (ObterMedicamento) RequestName() string { return "ObterMedicamento" }

// ListarMedicamentos: ApenasAtivos defaults to true, CategoriaID 0 means any category.
type ListarMedicamentos struct {
	Nome                   string `form:"nome" json:"nome"`
	PrincipioAtivo         string `form:"principio_ativo" json:"principio_ativo"`
	Forma                  string `form:"forma" json:"forma"`
	Fabricante             string `form:"fabricante" json:"fabricante"`
	CategoriaID            int    `form:"categoria_id" json:"categoria_id"`
	LocalArmazenamento     string `form:"local" json:"local"`
	ApenasAtivos           *bool  `form:"apenas_ativos" json:"apenas_ativos"`
	ApenasVencendoEm30Dias bool   `form:"vencendo" json:"vencendo"`
	ApenasComEstoqueBaixo  bool   `form:"estoque_baixo" json:"estoque_baixo"`
	ApenasVencidos         bool   `form:"vencidos" json:"vencidos"`
	Pagina                 int    `form:"pagina" json:"pagina"`
	ItensPorPagina         int    `form:"itens_por_pagina" json:"itens_por_pagina"`
	OrdenarPor             string `form:"ordenar_por" json:"ordenar_por"`
	OrdemDecrescente       bool   `form:"desc" json:"desc"`
}

func (ListarMedicamentos) RequestName() string { return "ListarMedicamentos" }

type ObterDashboard struct{}

func (ObterDashboard) RequestName() string { return "ObterDashboard" }

type SugestoesCompra struct{}

func (SugestoesCompra) RequestName() string { return "SugestoesCompra" }

var ordenacoes = map[string]medicamento.Ordenacao{
	"nome":             medicamento.OrdenarPorNome,
	"data_validade":    medicamento.OrdenarPorDataValidade,
	"dataValidade":     medicamento.OrdenarPorDataValidade,
	"quantidade_atual": medicamento.OrdenarPorQuantidadeAtual,
	"quantidadeAtual":  medicamento.OrdenarPorQuantidadeAtual,
}

func (q ListarMedicamentos) filtro() medicamento.Filtro {
	f := medicamento.NovoFiltro()
	f.Nome = q.Nome
	f.PrincipioAtivo = q.PrincipioAtivo
	f.Fabricante = q.Fabricante
	f.LocalArmazenamento = q.LocalArmazenamento
	if forma, err := medicamento.ParseFormaFarmaceutica(q.Forma); q.Forma != "" && err == nil {
		f.Forma = &forma
	}
	if q.CategoriaID > 0 {
		id := categoria.NewID(q.CategoriaID)
		f.CategoriaID = &id
	}
	if q.ApenasAtivos != nil {
		f.ApenasAtivos = *q.ApenasAtivos
	}
	f.ApenasVencendoEm30Dias = q.ApenasVencendoEm30Dias
	f.ApenasComEstoqueBaixo = q.ApenasComEstoqueBaixo
	f.ApenasVencidos = q.ApenasVencidos
	if q.Pagina > 0 {
		f.Pagina = q.Pagina
	}
	if q.ItensPorPagina > 0 {
		f.ItensPorPagina = q.ItensPorPagina
	}
	if por, ok := ordenacoes[q.OrdenarPor]; ok {
		f.OrdenarPor = por
	}
	f.OrdemDecrescente = q.OrdemDecrescente
	return f.Normalizado()
}

// ============================================================================
// Handlers
// ============================================================================

func (s *Service) handleObter(ctx context.Context, q ObterMedicamento) (common.ResultOf[MedicamentoDTO], error) {
	m, err := s.meds.BuscarPorID(ctx, medicamento.NewID(q.ID))
	if err != nil {
		return common.ResultOf[MedicamentoDTO]{}, err
	}
	cat, _, err := s.categoriaOpcional(ctx, m.CategoriaID())
	if err != nil {
		return common.ResultOf[MedicamentoDTO]{}, err
	}
	return common.SuccessOf(toDTO(m, cat, medicamento.Hoje())), nil
}

func (s *Service) handleListar(ctx context.Context, q ListarMedicamentos) (common.ResultOf[common.Page[MedicamentoDTO]], error) {
	f := q.filtro()

	var (
		itens []*medicamento.Medicamento
		total int
		cats  []*categoria.Categoria
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		itens, total, err = s.meds.BuscarComFiltros(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.cats.Listar(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return common.ResultOf[common.Page[MedicamentoDTO]]{}, err
	}

	idx := indexarCategorias(cats)
	hoje := medicamento.Hoje()
	dtos := make([]MedicamentoDTO, 0, len(itens))
	for _, m := range itens {
		dtos = append(dtos, toDTO(m, idx[m.CategoriaID()], hoje))
	}
	return common.SuccessOf(common.NewPage(dtos, total, f.Pagina, f.ItensPorPagina)), nil
}

func (s *Service) handleDashboard(ctx context.Context, _ ObterDashboard) (common.ResultOf[DashboardDTO], error) {
	var (
		todos []*medicamento.Medicamento
		cats  []*categoria.Categoria
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		todos, err = s.meds.Listar(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.cats.Listar(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return common.ResultOf[DashboardDTO]{}, err
	}
	return common.SuccessOf(montarDashboard(todos, cats, medicamento.Hoje(), time.Now())), nil
}

// montarDashboard counts active items only, except for TotalMedicamentos.
func montarDashboard(todos []*medicamento.Medicamento, cats []*categoria.Categoria, hoje, agora time.Time) DashboardDTO {
	idx := indexarCategorias(cats)
	porCategoria := make(map[categoria.ID]*CategoriaEstatistica, len(cats))
	estatisticas := make([]CategoriaEstatistica, 0, len(cats))
	for _, c := range cats {
		estatisticas = append(estatisticas, CategoriaEstatistica{ID: c.ID().Valor(), Nome: c.Nome(), Cor: c.Cor()})
	}
	for i := range estatisticas {
		porCategoria[categoria.NewID(estatisticas[i].ID)] = &estatisticas[i]
	}

	d := DashboardDTO{
		Geral: EstatisticasGerais{
			TotalMedicamentos: len(todos),
			TotalCategorias:   len(cats),
			UltimaAtualizacao: agora,
		},
	}

	var alerta []*medicamento.Medicamento
	for _, m := range todos {
		if !m.Ativo() {
			continue
		}
		d.Geral.MedicamentosAtivos++

		validade := m.DataValidade()
		vencido := validade.EstaVencidoEm(hoje)
		em7, _ := validade.VenceEmAPartirDe(hoje, 7)
		em30, _ := validade.VenceEmAPartirDe(hoje, 30)
		em90, _ := validade.VenceEmAPartirDe(hoje, 90)
		switch {
		case vencido:
			d.Vencimento.VencidosHoje++
		case em7:
			d.Vencimento.VencendoEm7Dias++
		case em30:
			d.Vencimento.VencendoEm30Dias++
		case em90:
			d.Vencimento.VencendoEm90Dias++
		}

		baixo := m.EstoqueEstaAbaixoDoMinimo()
		switch {
		case m.EstaEsgotado():
			d.Estoque.Esgotados++
		case baixo:
			d.Estoque.ComEstoqueBaixo++
		default:
			d.Estoque.ComEstoqueNormal++
		}

		if est, ok := porCategoria[m.CategoriaID()]; ok {
			est.TotalMedicamentos++
			if em30 {
				est.MedicamentosVencendoEm30Dias++
			}
			if baixo {
				est.MedicamentosComEstoqueBaixo++
			}
		}

		if vencido || em7 || baixo {
			alerta = append(alerta, m)
		}
	}

	sort.SliceStable(alerta, func(i, j int) bool {
		return alerta[i].DataValidade().Valor().Before(alerta[j].DataValidade().Valor())
	})
	if len(alerta) > maxMedicamentosAlerta {
		alerta = alerta[:maxMedicamentosAlerta]
	}
	d.MedicamentosAlerta = make([]MedicamentoResumoDTO, 0, len(alerta))
	for _, m := range alerta {
		d.MedicamentosAlerta = append(d.MedicamentosAlerta, toResumo(m, idx[m.CategoriaID()], hoje))
	}
	d.Categorias = estatisticas
	return d
}

func (s *Service) handleSugestoes(ctx context.Context, _ SugestoesCompra) (common.ResultOf[[]SugestaoCompraDTO], error) {
	sugestoes, err := s.notificacao.GerarSugestoesCompra(ctx)
	if err != nil {
		return common.ResultOf[[]SugestaoCompraDTO]{}, err
	}
	out := make([]SugestaoCompraDTO, 0, len(sugestoes))
	for _, sg := range sugestoes {
		out = append(out, toSugestaoDTO(sg))
	}
	return common.SuccessOf(out), nil
}
