package medicamento

import (
	"context"
	"strings"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/shared"
)

// ============================================================================
// ValidacaoService - rules that need the repository
// ============================================================================

// ValidacaoService only queries; persistence stays with the application layer.
type ValidacaoService struct {
	repo Repository
}

func NewValidacaoService(repo Repository) *ValidacaoService {
	return &ValidacaoService{repo: repo}
}

// ExisteMedicamentoSimilar reports whether another item has the same active ingredient and dosage.
// ignorar excludes one id, used when updating; pass the zero id otherwise.
func (s *ValidacaoService) ExisteMedicamentoSimilar(ctx context.Context, principioAtivo, dosagem string, ignorar ID) (bool, error) {
	alvo, err := NewDosagem(dosagem)
	if err != nil {
		return false, err
	}

	candidatos, err := s.repo.BuscarPorPrincipioAtivo(ctx, principioAtivo)
	if err != nil {
		return false, err
	}
	for _, m := range candidatos {
		if !ignorar.IsZero() && m.ID() == ignorar {
			continue
		}
		if strings.EqualFold(m.PrincipioAtivo(), strings.TrimSpace(principioAtivo)) && m.Dosagem().Equals(alvo) {
			return true, nil
		}
	}
	return false, nil
}

// CodigoBarrasEUnico reports whether no other item carries codigo. An empty code is always unique.
func (s *ValidacaoService) CodigoBarrasEUnico(ctx context.Context, codigo string, ignorar ID) (bool, error) {
	codigo = strings.TrimSpace(codigo)
	if codigo == "" {
		return true, nil
	}

	existente, err := s.repo.BuscarPorCodigoBarras(ctx, codigo)
	if err != nil {
		if IsNotFound(err) {
			return true, nil
		}
		return false, err
	}
	return !ignorar.IsZero() && existente.ID() == ignorar, nil
}

// ============================================================================
// NotificacaoService - alerts, metrics and restock suggestions
// ============================================================================

type NotificacoesMedicamentos struct {
	VencendoEm7Dias  []*Medicamento
	VencendoEm30Dias []*Medicamento
	Vencidos         []*Medicamento
	ComEstoqueBaixo  []*Medicamento
}

type MetricasSistema struct {
	TotalMedicamentos            int
	MedicamentosAtivos           int
	MedicamentosVencidos         int
	MedicamentosVencendoEm30Dias int
	MedicamentosComEstoqueBaixo  int
	TotalCategorias              int
}

const (
	MotivoSugestaoEstoqueBaixo = "Estoque baixo"
	MotivoSugestaoVencendo     = "Vencendo em breve"
)

type SugestaoCompra struct {
	MedicamentoID      ID
	NomeMedicamento    string
	QuantidadeAtual    int
	QuantidadeMinima   int
	QuantidadeSugerida int
	Motivo             string
}

type NotificacaoService struct {
	repo       Repository
	categorias categoria.Repository
}

func NewNotificacaoService(repo Repository, categorias categoria.Repository) *NotificacaoService {
	return &NotificacaoService{repo: repo, categorias: categorias}
}

// VerificarMedicamentosParaNotificacao lists active items that need attention.
func (s *NotificacaoService) VerificarMedicamentosParaNotificacao(ctx context.Context) (NotificacoesMedicamentos, error) {
	var out NotificacoesMedicamentos
	var err error

	if out.VencendoEm7Dias, err = s.repo.BuscarPorEspecificacao(ctx, shared.And(Ativos(), VencendoEm(7))); err != nil {
		return out, err
	}
	if out.VencendoEm30Dias, err = s.repo.BuscarPorEspecificacao(ctx, shared.And(Ativos(), VencendoEm(30))); err != nil {
		return out, err
	}
	if out.Vencidos, err = s.repo.BuscarPorEspecificacao(ctx, shared.And(Ativos(), Vencidos())); err != nil {
		return out, err
	}
	if out.ComEstoqueBaixo, err = s.repo.BuscarPorEspecificacao(ctx, shared.And(Ativos(), ComEstoqueBaixo())); err != nil {
		return out, err
	}
	return out, nil
}

func (s *NotificacaoService) CalcularMetricas(ctx context.Context) (MetricasSistema, error) {
	todos, err := s.repo.Listar(ctx)
	if err != nil {
		return MetricasSistema{}, err
	}
	categorias, err := s.categorias.Listar(ctx)
	if err != nil {
		return MetricasSistema{}, err
	}

	m := MetricasSistema{TotalMedicamentos: len(todos), TotalCategorias: len(categorias)}
	hoje := Hoje()
	for _, item := range todos {
		if !item.Ativo() {
			continue
		}
		m.MedicamentosAtivos++
		switch {
		case item.DataValidade().EstaVencidoEm(hoje):
			m.MedicamentosVencidos++
		case item.DataValidade().venceEm(hoje, 30):
			m.MedicamentosVencendoEm30Dias++
		}
		if item.EstoqueEstaAbaixoDoMinimo() {
			m.MedicamentosComEstoqueBaixo++
		}
	}
	return m, nil
}

// GerarSugestoesCompra suggests twice the minimum minus current stock for low items,
// and the minimum for items expiring within 30 days. An item gets at most one suggestion.
func (s *NotificacaoService) GerarSugestoesCompra(ctx context.Context) ([]SugestaoCompra, error) {
	ativos, err := s.repo.BuscarPorEspecificacao(ctx, Ativos())
	if err != nil {
		return nil, err
	}

	hoje := Hoje()
	sugestoes := make([]SugestaoCompra, 0)
	for _, m := range ativos {
		atual, minima := m.QuantidadeAtual().Valor(), m.QuantidadeMinima().Valor()
		base := SugestaoCompra{
			MedicamentoID:    m.ID(),
			NomeMedicamento:  m.Nome(),
			QuantidadeAtual:  atual,
			QuantidadeMinima: minima,
		}
		switch {
		case m.EstoqueEstaAbaixoDoMinimo():
			base.QuantidadeSugerida = max(minima*2-atual, 1)
			base.Motivo = MotivoSugestaoEstoqueBaixo
		case m.DataValidade().venceEm(hoje, 30):
			base.QuantidadeSugerida = max(minima, 1)
			base.Motivo = MotivoSugestaoVencendo
		default:
			continue
		}
		sugestoes = append(sugestoes, base)
	}
	return sugestoes, nil
}
