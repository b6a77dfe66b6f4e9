// Package categoria manages the categories medications are grouped by.
package categoria

import (
	"context"
	"strings"

	"meusmedicamentos/application/common"
	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"
	"meusmedicamentos/domain/shared"

	"go.uber.org/zap"
)

type Service struct {
	cats   categoria.Repository
	meds   medicamento.Repository
	uows   shared.UnitOfWorkFactory
	logger *zap.Logger

	criar     *common.Pipeline[CriarCategoria, common.ResultOf[CategoriaDTO]]
	atualizar *common.Pipeline[AtualizarCategoria, common.ResultOf[CategoriaDTO]]
	status    *common.Pipeline[AlterarStatusCategoria, common.Result]
	remover   *common.Pipeline[RemoverCategoria, common.Result]
	listar    *common.Pipeline[ListarCategorias, common.ResultOf[[]CategoriaDTO]]
}

func NewService(cats categoria.Repository, meds medicamento.Repository, uows shared.UnitOfWorkFactory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{cats: cats, meds: meds, uows: uows, logger: logger}

	s.criar = common.NewStandardPipeline(logger,
		common.HandlerFunc[CriarCategoria, common.ResultOf[CategoriaDTO]](s.handleCriar),
		criarValidator())
	s.atualizar = common.NewStandardPipeline(logger,
		common.HandlerFunc[AtualizarCategoria, common.ResultOf[CategoriaDTO]](s.handleAtualizar),
		atualizarValidator())
	s.status = common.NewStandardPipeline(logger,
		common.HandlerFunc[AlterarStatusCategoria, common.Result](s.handleAlterarStatus),
		idValidator(func(c AlterarStatusCategoria) int { return c.ID }))
	s.remover = common.NewStandardPipeline(logger,
		common.HandlerFunc[RemoverCategoria, common.Result](s.handleRemover),
		idValidator(func(c RemoverCategoria) int { return c.ID }))
	s.listar = common.NewStandardPipeline(logger,
		common.HandlerFunc[ListarCategorias, common.ResultOf[[]CategoriaDTO]](s.handleListar))
	return s
}

func (s *Service) Criar(ctx context.Context, cmd CriarCategoria) (common.ResultOf[CategoriaDTO], error) {
	return s.criar.Send(ctx, cmd)
}

func (s *Service) Atualizar(ctx context.Context, cmd AtualizarCategoria) (common.ResultOf[CategoriaDTO], error) {
	return s.atualizar.Send(ctx, cmd)
}

func (s *Service) AlterarStatus(ctx context.Context, cmd AlterarStatusCategoria) (common.Result, error) {
	return s.status.Send(ctx, cmd)
}

func (s *Service) Remover(ctx context.Context, cmd RemoverCategoria) (common.Result, error) {
	return s.remover.Send(ctx, cmd)
}

func (s *Service) Listar(ctx context.Context, q ListarCategorias) (common.ResultOf[[]CategoriaDTO], error) {
	return s.listar.Send(ctx, q)
}

func (s *Service) handleCriar(ctx context.Context, cmd CriarCategoria) (common.ResultOf[CategoriaDTO], error) {
	var out CategoriaDTO
	uow := s.uows.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		nome := strings.TrimSpace(cmd.Nome)
		if err := s.nomeDisponivel(ctx, nome, 0); err != nil {
			return err
		}
		c, err := categoria.New(nome, strings.TrimSpace(cmd.Descricao), strings.TrimSpace(cmd.Cor))
		if err != nil {
			return err
		}
		if err := s.cats.Adicionar(ctx, c); err != nil {
			return err
		}
		uow.RegisterNew(c)
		out = toDTO(c, 0)
		return nil
	})
	if err != nil {
		return common.ResultOf[CategoriaDTO]{}, err
	}
	s.logger.Info("categoria criada", zap.Int("categoria_id", out.ID), zap.String("nome", out.Nome))
	return common.SuccessOf(out), nil
}

func (s *Service) handleAtualizar(ctx context.Context, cmd AtualizarCategoria) (common.ResultOf[CategoriaDTO], error) {
	var out CategoriaDTO
	uow := s.uows.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.cats.BuscarPorID(ctx, categoria.NewID(cmd.ID))
		if err != nil {
			return err
		}
		nome := strings.TrimSpace(cmd.Nome)
		if err := s.nomeDisponivel(ctx, nome, c.ID()); err != nil {
			return err
		}
		if err := c.Atualizar(nome, strings.TrimSpace(cmd.Descricao), strings.TrimSpace(cmd.Cor)); err != nil {
			return err
		}
		if err := s.cats.Atualizar(ctx, c); err != nil {
			return err
		}
		uow.RegisterDirty(c)

		vinculados, err := s.meds.BuscarPorCategoria(ctx, c.ID())
		if err != nil {
			return err
		}
		out = toDTO(c, len(vinculados))
		return nil
	})
	if err != nil {
		return common.ResultOf[CategoriaDTO]{}, err
	}
	return common.SuccessOf(out), nil
}

func (s *Service) handleAlterarStatus(ctx context.Context, cmd AlterarStatusCategoria) (common.Result, error) {
	uow := s.uows.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.cats.BuscarPorID(ctx, categoria.NewID(cmd.ID))
		if err != nil {
			return err
		}
		if cmd.Ativo {
			c.Ativar()
		} else {
			c.Desativar()
		}
		if err := s.cats.Atualizar(ctx, c); err != nil {
			return err
		}
		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return common.Result{}, err
	}
	return common.Success(), nil
}

func (s *Service) handleRemover(ctx context.Context, cmd RemoverCategoria) (common.Result, error) {
	uow := s.uows.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.cats.BuscarPorID(ctx, categoria.NewID(cmd.ID))
		if err != nil {
			return err
		}
		emUso, err := s.cats.TemMedicamentos(ctx, c.ID())
		if err != nil {
			return err
		}
		if emUso {
			return categoria.NewCategoriaEmUsoError(c.ID())
		}
		if err := s.cats.Remover(ctx, c); err != nil {
			return err
		}
		uow.RegisterRemoved(c)
		return nil
	})
	if err != nil {
		return common.Result{}, err
	}
	return common.Success(), nil
}

func (s *Service) handleListar(ctx context.Context, q ListarCategorias) (common.ResultOf[[]CategoriaDTO], error) {
	listar := s.cats.Listar
	if q.ApenasAtivas {
		listar = s.cats.ListarAtivas
	}
	cats, err := listar(ctx)
	if err != nil {
		return common.ResultOf[[]CategoriaDTO]{}, err
	}
	meds, err := s.meds.BuscarPorEspecificacao(ctx, medicamento.Ativos())
	if err != nil {
		return common.ResultOf[[]CategoriaDTO]{}, err
	}

	totais := make(map[categoria.ID]int)
	for _, m := range meds {
		totais[m.CategoriaID()]++
	}
	out := make([]CategoriaDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, toDTO(c, totais[c.ID()]))
	}
	return common.SuccessOf(out), nil
}

// nomeDisponivel fails when another category, other than ignorar, already uses nome.
func (s *Service) nomeDisponivel(ctx context.Context, nome string, ignorar categoria.ID) error {
	existente, err := s.cats.BuscarPorNome(ctx, nome)
	if err != nil {
		return err
	}
	if existente != nil && existente.ID() != ignorar {
		return categoria.NewNomeDuplicadoError(nome)
	}
	return nil
}
