/*
Package medicamento orchestrates the household medication inventory.

Every command and query goes through a common.Pipeline: logging wraps validation,
which wraps the handler. Handlers that mutate open their own unit of work, so the
events recorded by the aggregates are drained when the work commits.
*/
package medicamento

import (
	"context"

	"meusmedicamentos/application/common"
	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"
	"meusmedicamentos/domain/shared"

	"go.uber.org/zap"
)

const QuantidadeMinimaPadrao = 5

type Options struct {
	// QuantidadeMinimaPadrao applies when a registration omits the minimum.
	QuantidadeMinimaPadrao int
}

func DefaultOptions() Options {
	return Options{QuantidadeMinimaPadrao: QuantidadeMinimaPadrao}
}

// Service is the application entry point for medications.
type Service struct {
	meds        medicamento.Repository
	cats        categoria.Repository
	uows        shared.UnitOfWorkFactory
	validacao   *medicamento.ValidacaoService
	notificacao *medicamento.NotificacaoService
	logger      *zap.Logger
	opts        Options

	cadastrar  *common.Pipeline[CadastrarMedicamento, common.ResultOf[MedicamentoDTO]]
	atualizar  *common.Pipeline[AtualizarMedicamento, common.ResultOf[MedicamentoDTO]]
	movimentar *common.Pipeline[MovimentarEstoque, common.ResultOf[MedicamentoDTO]]
	mudarLocal *common.Pipeline[MudarLocal, common.ResultOf[MedicamentoDTO]]
	status     *common.Pipeline[AlterarStatus, common.Result]
	sinalizar  *common.Pipeline[SinalizarVencimentos, common.ResultOf[int]]
	obter      *common.Pipeline[ObterMedicamento, common.ResultOf[MedicamentoDTO]]
	listar     *common.Pipeline[ListarMedicamentos, common.ResultOf[common.Page[MedicamentoDTO]]]
	dashboard  *common.Pipeline[ObterDashboard, common.ResultOf[DashboardDTO]]
	sugestoes  *common.Pipeline[SugestoesCompra, common.ResultOf[[]SugestaoCompraDTO]]
}

func NewService(
	meds medicamento.Repository,
	cats categoria.Repository,
	uows shared.UnitOfWorkFactory,
	logger *zap.Logger,
	opts Options,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.QuantidadeMinimaPadrao <= 0 {
		opts.QuantidadeMinimaPadrao = QuantidadeMinimaPadrao
	}

	s := &Service{
		meds:        meds,
		cats:        cats,
		uows:        uows,
		validacao:   medicamento.NewValidacaoService(meds),
		notificacao: medicamento.NewNotificacaoService(meds, cats),
		logger:      logger,
		opts:        opts,
	}

	s.cadastrar = common.NewStandardPipeline(logger,
		common.HandlerFunc[CadastrarMedicamento, common.ResultOf[MedicamentoDTO]](s.handleCadastrar),
		cadastroDadosValidator(), cadastroEstoqueValidator())
	s.atualizar = common.NewStandardPipeline(logger,
		common.HandlerFunc[AtualizarMedicamento, common.ResultOf[MedicamentoDTO]](s.handleAtualizar),
		atualizarValidator())
	s.movimentar = common.NewStandardPipeline(logger,
		common.HandlerFunc[MovimentarEstoque, common.ResultOf[MedicamentoDTO]](s.handleMovimentar),
		movimentarValidator())
	s.mudarLocal = common.NewStandardPipeline(logger,
		common.HandlerFunc[MudarLocal, common.ResultOf[MedicamentoDTO]](s.handleMudarLocal),
		mudarLocalValidator())
	s.status = common.NewStandardPipeline(logger,
		common.HandlerFunc[AlterarStatus, common.Result](s.handleAlterarStatus),
		alterarStatusValidator())
	s.sinalizar = common.NewStandardPipeline(logger,
		common.HandlerFunc[SinalizarVencimentos, common.ResultOf[int]](s.handleSinalizarVencimentos),
		sinalizarValidator())
	s.obter = common.NewStandardPipeline(logger,
		common.HandlerFunc[ObterMedicamento, common.ResultOf[MedicamentoDTO]](s.handleObter),
		obterValidator())
	s.listar = common.NewStandardPipeline(logger,
		common.HandlerFunc[ListarMedicamentos, common.ResultOf[common.Page[MedicamentoDTO]]](s.handleListar),
		listarValidator())
	s.dashboard = common.NewStandardPipeline(logger,
		common.HandlerFunc[ObterDashboard, common.ResultOf[DashboardDTO]](s.handleDashboard))
	s.sugestoes = common.NewStandardPipeline(logger,
		common.HandlerFunc[SugestoesCompra, common.ResultOf[[]SugestaoCompraDTO]](s.handleSugestoes))
	return s
}

func (s *Service) Cadastrar(ctx context.Context, cmd CadastrarMedicamento) (common.ResultOf[MedicamentoDTO], error) {
	return s.cadastrar.Send(ctx, cmd)
}

func (s *Service) Atualizar(ctx context.Context, cmd AtualizarMedicamento) (common.ResultOf[MedicamentoDTO], error) {
	return s.atualizar.Send(ctx, cmd)
}

func (s *Service) MovimentarEstoque(ctx context.Context, cmd MovimentarEstoque) (common.ResultOf[MedicamentoDTO], error) {
	return s.movimentar.Send(ctx, cmd)
}

func (s *Service) MudarLocal(ctx context.Context, cmd MudarLocal) (common.ResultOf[MedicamentoDTO], error) {
	return s.mudarLocal.Send(ctx, cmd)
}

func (s *Service) AlterarStatus(ctx context.Context, cmd AlterarStatus) (common.Result, error) {
	return s.status.Send(ctx, cmd)
}

func (s *Service) SinalizarVencimentos(ctx context.Context, cmd SinalizarVencimentos) (common.ResultOf[int], error) {
	return s.sinalizar.Send(ctx, cmd)
}

func (s *Service) Obter(ctx context.Context, q ObterMedicamento) (common.ResultOf[MedicamentoDTO], error) {
	return s.obter.Send(ctx, q)
}

func (s *Service) Listar(ctx context.Context, q ListarMedicamentos) (common.ResultOf[common.Page[MedicamentoDTO]], error) {
	return s.listar.Send(ctx, q)
}

func (s *Service) Dashboard(ctx context.Context) (common.ResultOf[DashboardDTO], error) {
	return s.dashboard.Send(ctx, ObterDashboard{})
}

func (s *Service) SugestoesCompra(ctx context.Context) (common.ResultOf[[]SugestaoCompraDTO], error) {
	return s.sugestoes.Send(ctx, SugestoesCompra{})
}
