/*
Package medicamento is the core of the inventory: the Medicamento aggregate,
its value objects, domain events, specifications and repository contract.

Every mutation goes through an aggregate method. Methods validate first and
only then change state, so a failed call leaves the aggregate untouched.
Invariant violations are returned as shared.ErrDomainRule errors.
*/
package medicamento

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/shared"
)

const (
	entityName = "medicamento"

	NomeMaxLen           = 100
	PrincipioAtivoMaxLen = 100
	FabricanteMaxLen     = 50

	MotivoAtualizacaoManual = "Atualização manual"
	MotivoConsumo           = "Consumo"
	MotivoCompra            = "Compra"
)

var codigoBarrasPattern = regexp.MustCompile(`^\d{13}$`)

// Medicamento aggregate root.
type Medicamento struct {
	shared.Identity[ID]
	shared.Audit
	shared.EventRecorder

	nome             string
	principioAtivo   string
	dosagem          Dosagem
	forma            FormaFarmaceutica
	fabricante       string
	dataValidade     DataValidade
	quantidadeAtual  Quantidade
	quantidadeMinima Quantidade
	local            LocalArmazenamento
	lote             string
	codigoBarras     string
	observacoes      string
	categoriaID      categoria.ID
	ativo            bool
	version          int
}

// CadastroParams holds the raw input of a registration. Empty optional strings mean "not informed",
// and a zero CategoriaID means no category.
type CadastroParams struct {
	Nome               string
	PrincipioAtivo     string
	Dosagem            string
	Forma              FormaFarmaceutica
	Fabricante         string
	DataValidade       time.Time
	QuantidadeAtual    int
	QuantidadeMinima   int
	LocalArmazenamento string
	Lote               string
	CodigoBarras       string
	Observacoes        string
	CategoriaID        categoria.ID
}

// ============================================================================
// Factory
// ============================================================================

// NewMedicamento validates every input before building anything and records MedicamentoCadastrado.
// The id stays zero until a repository assigns it through AtribuirID.
func NewMedicamento(p CadastroParams) (*Medicamento, error) {
	nome := strings.TrimSpace(p.Nome)
	principio := strings.TrimSpace(p.PrincipioAtivo)
	fabricante := strings.TrimSpace(p.Fabricante)

	if err := validarDescritivos(nome, principio, fabricante); err != nil {
		return nil, err
	}
	if !p.Forma.Valida() {
		return nil, shared.NewDomainRuleError(entityName, "forma", "Forma farmacêutica inválida")
	}
	codigo := strings.TrimSpace(p.CodigoBarras)
	if err := validarCodigoBarras(codigo); err != nil {
		return nil, err
	}

	dosagem, err := NewDosagem(p.Dosagem)
	if err != nil {
		return nil, err
	}
	validade, err := NewDataValidade(p.DataValidade)
	if err != nil {
		return nil, err
	}
	atual, err := NewQuantidade(p.QuantidadeAtual)
	if err != nil {
		return nil, err
	}
	minima, err := NewQuantidade(p.QuantidadeMinima)
	if err != nil {
		return nil, err
	}
	local, err := NewLocalArmazenamento(p.LocalArmazenamento)
	if err != nil {
		return nil, err
	}

	m := &Medicamento{
		Audit:            shared.NewAudit(time.Now().UTC()),
		nome:             nome,
		principioAtivo:   principio,
		dosagem:          dosagem,
		forma:            p.Forma,
		fabricante:       fabricante,
		dataValidade:     validade,
		quantidadeAtual:  atual,
		quantidadeMinima: minima,
		local:            local,
		lote:             strings.TrimSpace(p.Lote),
		codigoBarras:     codigo,
		observacoes:      strings.TrimSpace(p.Observacoes),
		categoriaID:      p.CategoriaID,
		ativo:            true,
	}
	m.Record(NewMedicamentoCadastrado(m.ID(), m.nome))
	return m, nil
}

// ============================================================================
// Reconstruction (repositories only)
// ============================================================================

type ReconstructionDTO struct {
	ID                 ID
	Nome               string
	PrincipioAtivo     string
	Dosagem            string
	Forma              FormaFarmaceutica
	Fabricante         string
	DataValidade       time.Time
	QuantidadeAtual    int
	QuantidadeMinima   int
	LocalArmazenamento string
	Lote               string
	CodigoBarras       string
	Observacoes        string
	CategoriaID        categoria.ID
	Ativo              bool
	Version            int
	CriadoEm           time.Time
	AtualizadoEm       *time.Time
}

// RebuildFromDTO restores a stored aggregate. Value objects are re-validated except the
// expiry window, which moves with time; no events are recorded.
func RebuildFromDTO(dto ReconstructionDTO) (*Medicamento, error) {
	dosagem, err := NewDosagem(dto.Dosagem)
	if err != nil {
		return nil, err
	}
	atual, err := NewQuantidade(dto.QuantidadeAtual)
	if err != nil {
		return nil, err
	}
	minima, err := NewQuantidade(dto.QuantidadeMinima)
	if err != nil {
		return nil, err
	}
	local, err := NewLocalArmazenamento(dto.LocalArmazenamento)
	if err != nil {
		return nil, err
	}

	return &Medicamento{
		Identity:         shared.NewIdentity(dto.ID),
		Audit:            shared.RestoreAudit(dto.CriadoEm, dto.AtualizadoEm),
		nome:             dto.Nome,
		principioAtivo:   dto.PrincipioAtivo,
		dosagem:          dosagem,
		forma:            dto.Forma,
		fabricante:       dto.Fabricante,
		dataValidade:     RestoreDataValidade(dto.DataValidade),
		quantidadeAtual:  atual,
		quantidadeMinima: minima,
		local:            local,
		lote:             dto.Lote,
		codigoBarras:     dto.CodigoBarras,
		observacoes:      dto.Observacoes,
		categoriaID:      dto.CategoriaID,
		ativo:            dto.Ativo,
		version:          dto.Version,
	}, nil
}

// AtribuirID binds the storage-assigned id and re-targets events recorded before the first save.
func (m *Medicamento) AtribuirID(id ID) {
	m.AssignID(id)
	m.MapEvents(func(e shared.DomainEvent) shared.DomainEvent {
		if r, ok := e.(reidentificavel); ok && e.GetAggregateID() == ID(0).String() {
			return r.comID(id)
		}
		return e
	})
}

// ============================================================================
// Stock
// ============================================================================

// AtualizarEstoque applies a signed delta. EstoqueBaixo follows EstoqueAtualizado
// whenever the new quantity is at or below the minimum.
func (m *Medicamento) AtualizarEstoque(delta int, motivo string) error {
	nova, err := m.quantidadeAtual.Adicionar(delta)
	if err != nil {
		return err
	}
	if strings.TrimSpace(motivo) == "" {
		motivo = MotivoAtualizacaoManual
	}

	m.quantidadeAtual = nova
	m.MarcarComoAtualizado(time.Now().UTC())

	m.Record(NewEstoqueAtualizado(m.ID(), m.nome, delta, motivo))
	if m.EstoqueEstaAbaixoDoMinimo() {
		m.Record(NewEstoqueBaixo(m.ID(), m.nome, m.quantidadeAtual.Valor(), m.quantidadeMinima.Valor()))
	}
	return nil
}

func (m *Medicamento) Consumir(quantidade int, motivo string) error {
	if quantidade <= 0 {
		return shared.NewDomainRuleError(entityName, "quantidade", "Quantidade a consumir deve ser positiva")
	}
	if m.quantidadeAtual.Valor() < quantidade {
		return NewEstoqueInsuficienteError(m.quantidadeAtual.Valor())
	}
	if strings.TrimSpace(motivo) == "" {
		motivo = MotivoConsumo
	}
	return m.AtualizarEstoque(-quantidade, motivo)
}

func (m *Medicamento) AdicionarAoEstoque(quantidade int, motivo string) error {
	if quantidade <= 0 {
		return shared.NewDomainRuleError(entityName, "quantidade", "Quantidade a adicionar deve ser positiva")
	}
	if strings.TrimSpace(motivo) == "" {
		motivo = MotivoCompra
	}
	return m.AtualizarEstoque(quantidade, motivo)
}

// DefinirQuantidadeMinima replaces the restock threshold.
func (m *Medicamento) DefinirQuantidadeMinima(valor int) error {
	minima, err := NewQuantidade(valor)
	if err != nil {
		return err
	}
	m.quantidadeMinima = minima
	m.MarcarComoAtualizado(time.Now().UTC())
	return nil
}

// ============================================================================
// Predicates
// ============================================================================

func (m *Medicamento) EstaVencido() bool { return m.dataValidade.EstaVencido() }

func (m *Medicamento) VenceEm(dias int) (bool, error) { return m.dataValidade.VenceEm(dias) }

func (m *Medicamento) EstoqueEstaAbaixoDoMinimo() bool {
	return m.quantidadeAtual.EstaBaixoDe(m.quantidadeMinima)
}

func (m *Medicamento) EstaEsgotado() bool { return m.quantidadeAtual.EstaEsgotada() }

// ============================================================================
// Descriptive data and location
// ============================================================================

// AtualizarInformacoes replaces the descriptive fields only; stock, validity and location are untouched.
func (m *Medicamento) AtualizarInformacoes(nome, principioAtivo, fabricante, observacoes string) error {
	nome = strings.TrimSpace(nome)
	principioAtivo = strings.TrimSpace(principioAtivo)
	fabricante = strings.TrimSpace(fabricante)
	if err := validarDescritivos(nome, principioAtivo, fabricante); err != nil {
		return err
	}

	m.nome = nome
	m.principioAtivo = principioAtivo
	m.fabricante = fabricante
	m.observacoes = strings.TrimSpace(observacoes)
	m.MarcarComoAtualizado(time.Now().UTC())
	return nil
}

func (m *Medicamento) MudarLocalArmazenamento(novoLocal string) error {
	local, err := NewLocalArmazenamento(novoLocal)
	if err != nil {
		return err
	}

	anterior := m.local.Descricao()
	m.local = local
	m.MarcarComoAtualizado(time.Now().UTC())
	m.Record(NewLocalArmazenamentoAlterado(m.ID(), m.nome, anterior, local.Descricao()))
	return nil
}

// DefinirCategoria links the medication to a category; the zero id unlinks it.
func (m *Medicamento) DefinirCategoria(id categoria.ID) {
	m.categoriaID = id
	m.MarcarComoAtualizado(time.Now().UTC())
}

// Desativar and Ativar toggle the soft-delete flag. They record no events.
func (m *Medicamento) Desativar() {
	m.ativo = false
	m.MarcarComoAtualizado(time.Now().UTC())
}

func (m *Medicamento) Ativar() {
	m.ativo = true
	m.MarcarComoAtualizado(time.Now().UTC())
}

// ============================================================================
// Expiry alerts
// ============================================================================

// SinalizarVencimento records MedicamentoVencido for an expired item still in stock,
// or MedicamentoVencendo when the date falls within janelaDias. It reports whether an event was recorded.
func (m *Medicamento) SinalizarVencimento(hoje time.Time, janelaDias int) bool {
	switch {
	case m.dataValidade.EstaVencidoEm(hoje):
		if m.quantidadeAtual.EstaEsgotada() {
			return false
		}
		m.Record(NewMedicamentoVencido(m.ID(), m.nome, m.dataValidade.Valor(), m.quantidadeAtual.Valor()))
		return true
	case janelaDias >= 0 && m.dataValidade.venceEm(Dia(hoje), janelaDias):
		m.Record(NewMedicamentoVencendo(m.ID(), m.nome, m.dataValidade.Valor(), m.dataValidade.DiasParaVencimentoEm(hoje)))
		return true
	default:
		return false
	}
}

// ============================================================================
// Validation helpers
// ============================================================================

func validarDescritivos(nome, principioAtivo, fabricante string) error {
	switch {
	case nome == "":
		return shared.NewDomainRuleError(entityName, "nome", "Nome do medicamento é obrigatório")
	case principioAtivo == "":
		return shared.NewDomainRuleError(entityName, "principioAtivo", "Princípio ativo é obrigatório")
	case fabricante == "":
		return shared.NewDomainRuleError(entityName, "fabricante", "Fabricante é obrigatório")
	case utf8.RuneCountInString(nome) > NomeMaxLen:
		return shared.NewDomainRuleError(entityName, "nome", "Nome deve ter no máximo 100 caracteres")
	case utf8.RuneCountInString(principioAtivo) > PrincipioAtivoMaxLen:
		return shared.NewDomainRuleError(entityName, "principioAtivo", "Princípio ativo deve ter no máximo 100 caracteres")
	case utf8.RuneCountInString(fabricante) > FabricanteMaxLen:
		return shared.NewDomainRuleError(entityName, "fabricante", "Fabricante deve ter no máximo 50 caracteres")
	}
	return nil
}

func validarCodigoBarras(codigo string) error {
	if codigo != "" && !codigoBarrasPattern.MatchString(codigo) {
		return shared.NewDomainRuleError(entityName, "codigoBarras", "Código de barras deve ter exatamente 13 dígitos")
	}
	return nil
}

// ============================================================================
// Getters
// ============================================================================

// Equals compares by id only.
func (m *Medicamento) Equals(other *Medicamento) bool {
	return other != nil && m.SameIdentity(other.Identity)
}

func (m *Medicamento) Nome() string                           { return m.nome }
func (m *Medicamento) PrincipioAtivo() string                 { return m.principioAtivo }
func (m *Medicamento) Dosagem() Dosagem                       { return m.dosagem }
func (m *Medicamento) Forma() FormaFarmaceutica               { return m.forma }
func (m *Medicamento) Fabricante() string                     { return m.fabricante }
func (m *Medicamento) DataValidade() DataValidade             { return m.dataValidade }
func (m *Medicamento) QuantidadeAtual() Quantidade            { return m.quantidadeAtual }
func (m *Medicamento) QuantidadeMinima() Quantidade           { return m.quantidadeMinima }
func (m *Medicamento) LocalArmazenamento() LocalArmazenamento { return m.local }
func (m *Medicamento) Lote() string                           { return m.lote }
func (m *Medicamento) CodigoBarras() string                   { return m.codigoBarras }
func (m *Medicamento) Observacoes() string                    { return m.observacoes }
func (m *Medicamento) CategoriaID() categoria.ID              { return m.categoriaID }
func (m *Medicamento) Ativo() bool                            { return m.ativo }
func (m *Medicamento) Version() int                           { return m.version }

func (m *Medicamento) AggregateID() string { return m.ID().String() }

// IncrementVersionForSave is called by repositories after an optimistic update.
func (m *Medicamento) IncrementVersionForSave() { m.version++ }

var _ shared.AggregateRoot = (*Medicamento)(nil)
