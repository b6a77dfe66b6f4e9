package medicamento

import (
	"context"
	"errors"
	"time"

	"meusmedicamentos/application/common"
	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"

	"go.uber.org/zap"
)

const msgCategoriaNaoEncontrada = "Categoria não encontrada"

// ============================================================================
// Commands
// ============================================================================

type CadastrarMedicamento struct {
	Nome               string      `json:"nome"`
	PrincipioAtivo     string      `json:"principio_ativo"`
	Dosagem            string      `json:"dosagem"`
	Forma              string      `json:"forma"`
	Fabricante         string      `json:"fabricante"`
	DataValidade       common.Date `json:"data_validade"`
	QuantidadeAtual    int         `json:"quantidade_atual"`
	QuantidadeMinima   *int        `json:"quantidade_minima"`
	LocalArmazenamento string      `json:"local_armazenamento"`
	Lote               string      `json:"lote"`
	CodigoBarras       string      `json:"codigo_barras"`
	Observacoes        string      `json:"observacoes"`
	CategoriaID        int         `json:"categoria_id"`
}

func (CadastrarMedicamento) RequestName() string { return "CadastrarMedicamento" }

// AtualizarMedicamento replaces descriptive data. Empty LocalArmazenamento keeps the
// current location, nil QuantidadeMinima keeps the current minimum and CategoriaID 0 unlinks.
type AtualizarMedicamento struct {
	ID                 int    `json:"-"`
	Nome               string `json:"nome"`
	PrincipioAtivo     string `json:"principio_ativo"`
	Fabricante         string `json:"fabricante"`
	Observacoes        string `json:"observacoes"`
	QuantidadeMinima   *int   `json:"quantidade_minima"`
	LocalArmazenamento string `json:"local_armazenamento"`
	CategoriaID        int    `json:"categoria_id"`
}

func (AtualizarMedicamento) RequestName() string { return "AtualizarMedicamento" }

// MovimentarEstoque: a positive Quantidade is an entry, a negative one is consumption.
type MovimentarEstoque struct {
	ID         int    `json:"-"`
	Quantidade int    `json:"quantidade"`
	Motivo     string `json:"motivo"`
}

func (MovimentarEstoque) RequestName() string { return "MovimentarEstoque" }

type MudarLocal struct {
	ID    int    `json:"-"`
	Local string `json:"local"`
}

func (MudarLocal) RequestName() string { return "MudarLocal" }

type AlterarStatus struct {
	ID    int  `json:"-"`
	Ativo bool `json:"ativo"`
}

func (AlterarStatus) RequestName() string { return "AlterarStatus" }

// SinalizarVencimentos records expiry alerts for every active item; the result is how many were raised.
type SinalizarVencimentos struct {
	JanelaDias int
	Hoje       time.Time
}

func (SinalizarVencimentos) RequestName() string { return "SinalizarVencimentos" }

// ============================================================================
// Handlers
// ============================================================================

func (s *Service) handleCadastrar(ctx context.Context, cmd CadastrarMedicamento) (common.ResultOf[MedicamentoDTO], error) {
	forma, err := medicamento.ParseFormaFarmaceutica(cmd.Forma)
	if err != nil {
		return common.FailureOf[MedicamentoDTO]("Forma farmacêutica inválida"), nil
	}
	minima := s.opts.QuantidadeMinimaPadrao
	if cmd.QuantidadeMinima != nil {
		minima = *cmd.QuantidadeMinima
	}

	var (
		out   MedicamentoDTO
		falha string
	)
	uow := s.uows.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		falha = ""
		m, err := medicamento.NewMedicamento(medicamento.CadastroParams{
			Nome:               cmd.Nome,
			PrincipioAtivo:     cmd.PrincipioAtivo,
			Dosagem:            cmd.Dosagem,
			Forma:              forma,
			Fabricante:         cmd.Fabricante,
			DataValidade:       cmd.DataValidade.Time,
			QuantidadeAtual:    cmd.QuantidadeAtual,
			QuantidadeMinima:   minima,
			LocalArmazenamento: cmd.LocalArmazenamento,
			Lote:               cmd.Lote,
			CodigoBarras:       cmd.CodigoBarras,
			Observacoes:        cmd.Observacoes,
			CategoriaID:        categoria.NewID(cmd.CategoriaID),
		})
		if err != nil {
			return err
		}

		cat, ok, err := s.categoriaOpcional(ctx, m.CategoriaID())
		if err != nil {
			return err
		}
		if !ok {
			falha = msgCategoriaNaoEncontrada
			return nil
		}

		unico, err := s.validacao.CodigoBarrasEUnico(ctx, m.CodigoBarras(), 0)
		if err != nil {
			return err
		}
		if !unico {
			return medicamento.NewCodigoBarrasDuplicadoError(m.CodigoBarras())
		}

		similar, err := s.validacao.ExisteMedicamentoSimilar(ctx, m.PrincipioAtivo(), m.Dosagem().String(), 0)
		if err != nil {
			return err
		}
		if similar {
			s.logger.Info("medicamento similar já cadastrado",
				zap.String("principio_ativo", m.PrincipioAtivo()),
				zap.String("dosagem", m.Dosagem().String()),
			)
		}

		if err := s.meds.Adicionar(ctx, m); err != nil {
			return err
		}
		uow.RegisterNew(m)
		out = toDTO(m, cat, medicamento.Hoje())
		return nil
	})
	if err != nil {
		return common.ResultOf[MedicamentoDTO]{}, err
	}
	if falha != "" {
		return common.FailureOf[MedicamentoDTO](falha), nil
	}
	return common.SuccessOf(out), nil
}

func (s *Service) handleAtualizar(ctx context.Context, cmd AtualizarMedicamento) (common.ResultOf[MedicamentoDTO], error) {
	var (
		out   MedicamentoDTO
		falha string
	)
	uow := s.uows.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		falha = ""
		m, err := s.meds.BuscarPorID(ctx, medicamento.NewID(cmd.ID))
		if err != nil {
			return err
		}

		cat, ok, err := s.categoriaOpcional(ctx, categoria.NewID(cmd.CategoriaID))
		if err != nil {
			return err
		}
		if !ok {
			falha = msgCategoriaNaoEncontrada
			return nil
		}

		if err := m.AtualizarInformacoes(cmd.Nome, cmd.PrincipioAtivo, cmd.Fabricante, cmd.Observacoes); err != nil {
			return err
		}
		if cmd.QuantidadeMinima != nil && *cmd.QuantidadeMinima != m.QuantidadeMinima().Valor() {
			if err := m.DefinirQuantidadeMinima(*cmd.QuantidadeMinima); err != nil {
				return err
			}
		}
		if cmd.LocalArmazenamento != "" {
			novo, err := medicamento.NewLocalArmazenamento(cmd.LocalArmazenamento)
			if err != nil {
				return err
			}
			if !novo.Equals(m.LocalArmazenamento()) {
				if err := m.MudarLocalArmazenamento(cmd.LocalArmazenamento); err != nil {
					return err
				}
			}
		}
		if m.CategoriaID() != categoria.NewID(cmd.CategoriaID) {
			m.DefinirCategoria(categoria.NewID(cmd.CategoriaID))
		}

		if err := s.meds.Atualizar(ctx, m); err != nil {
			return err
		}
		uow.RegisterDirty(m)
		out = toDTO(m, cat, medicamento.Hoje())
		return nil
	})
	if err != nil {
		return common.ResultOf[MedicamentoDTO]{}, err
	}
	if falha != "" {
		return common.FailureOf[MedicamentoDTO](falha), nil
	}
	return common.SuccessOf(out), nil
}

func (s *Service) handleMovimentar(ctx context.Context, cmd MovimentarEstoque) (common.ResultOf[MedicamentoDTO], error) {
	return s.mutar(ctx, cmd.ID, func(m *medicamento.Medicamento) error {
		if cmd.Quantidade > 0 {
			return m.AdicionarAoEstoque(cmd.Quantidade, cmd.Motivo)
		}
		return m.Consumir(-cmd.Quantidade, cmd.Motivo)
	})
}

func (s *Service) handleMudarLocal(ctx context.Context, cmd MudarLocal) (common.ResultOf[MedicamentoDTO], error) {
	return s.mutar(ctx, cmd.ID, func(m *medicamento.Medicamento) error {
		return m.MudarLocalArmazenamento(cmd.Local)
	})
}

func (s *Service) handleAlterarStatus(ctx context.Context, cmd AlterarStatus) (common.Result, error) {
	_, err := s.mutar(ctx, cmd.ID, func(m *medicamento.Medicamento) error {
		if cmd.Ativo {
			m.Ativar()
		} else {
			m.Desativar()
		}
		return nil
	})
	if err != nil {
		return common.Result{}, err
	}
	return common.Success(), nil
}

// mutar loads, applies fn, saves and registers the aggregate inside one unit of work.
func (s *Service) mutar(ctx context.Context, id int, fn func(m *medicamento.Medicamento) error) (common.ResultOf[MedicamentoDTO], error) {
	var out MedicamentoDTO
	uow := s.uows.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		m, err := s.meds.BuscarPorID(ctx, medicamento.NewID(id))
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
		if err := s.meds.Atualizar(ctx, m); err != nil {
			return err
		}
		uow.RegisterDirty(m)

		cat, _, err := s.categoriaOpcional(ctx, m.CategoriaID())
		if err != nil {
			return err
		}
		out = toDTO(m, cat, medicamento.Hoje())
		return nil
	})
	if err != nil {
		return common.ResultOf[MedicamentoDTO]{}, err
	}
	return common.SuccessOf(out), nil
}

func (s *Service) handleSinalizarVencimentos(ctx context.Context, cmd SinalizarVencimentos) (common.ResultOf[int], error) {
	hoje := cmd.Hoje
	if hoje.IsZero() {
		hoje = medicamento.Hoje()
	}

	sinalizados := 0
	uow := s.uows.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		sinalizados = 0
		candidatos, err := s.meds.BuscarPorEspecificacao(ctx, medicamento.Ativos())
		if err != nil {
			return err
		}
		for _, m := range candidatos {
			if m.SinalizarVencimento(hoje, cmd.JanelaDias) {
				uow.RegisterDirty(m)
				sinalizados++
			}
		}
		return nil
	})
	if err != nil {
		return common.ResultOf[int]{}, err
	}
	if sinalizados > 0 {
		s.logger.Info("alertas de vencimento registrados", zap.Int("total", sinalizados))
	}
	return common.SuccessOf(sinalizados), nil
}

// categoriaOpcional returns (nil, true) for the zero id and (nil, false) when the category does not exist.
func (s *Service) categoriaOpcional(ctx context.Context, id categoria.ID) (*categoria.Categoria, bool, error) {
	if id.IsZero() {
		return nil, true, nil
	}
	c, err := s.cats.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, categoria.ErrCategoriaNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return c, true, nil
}
