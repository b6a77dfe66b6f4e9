package medicamento

import (
	"time"

	"meusmedicamentos/domain/shared"
)

const (
	EventMedicamentoCadastrado      = "medicamento.cadastrado"
	EventEstoqueAtualizado          = "medicamento.estoque_atualizado"
	EventEstoqueBaixo               = "medicamento.estoque_baixo"
	EventLocalArmazenamentoAlterado = "medicamento.local_alterado"
	EventMedicamentoVencendo        = "medicamento.vencendo"
	EventMedicamentoVencido         = "medicamento.vencido"
)

type MedicamentoCadastrado struct {
	shared.EventMeta
	medicamentoID ID
	nome          string
}

func NewMedicamentoCadastrado(id ID, nome string) *MedicamentoCadastrado {
	return &MedicamentoCadastrado{EventMeta: shared.NewEventMeta(), medicamentoID: id, nome: nome}
}

func (e *MedicamentoCadastrado) EventName() string       { return EventMedicamentoCadastrado }
func (e *MedicamentoCadastrado) GetAggregateID() string  { return e.medicamentoID.String() }
func (e *MedicamentoCadastrado) MedicamentoID() ID       { return e.medicamentoID }
func (e *MedicamentoCadastrado) NomeMedicamento() string { return e.nome }
func (e *MedicamentoCadastrado) Payload() map[string]any {
	return map[string]any{"medicamento_id": e.medicamentoID.Valor(), "nome": e.nome}
}

type EstoqueAtualizado struct {
	shared.EventMeta
	medicamentoID ID
	nome          string
	quantidade    int
	motivo        string
}

func NewEstoqueAtualizado(id ID, nome string, quantidade int, motivo string) *EstoqueAtualizado {
	return &EstoqueAtualizado{
		EventMeta:     shared.NewEventMeta(),
		medicamentoID: id,
		nome:          nome,
		quantidade:    quantidade,
		motivo:        motivo,
	}
}

func (e *EstoqueAtualizado) EventName() string       { return EventEstoqueAtualizado }
func (e *EstoqueAtualizado) GetAggregateID() string  { return e.medicamentoID.String() }
func (e *EstoqueAtualizado) MedicamentoID() ID       { return e.medicamentoID }
func (e *EstoqueAtualizado) NomeMedicamento() string { return e.nome }

// QuantidadeMovimentada is signed: negative for consumption.
func (e *EstoqueAtualizado) QuantidadeMovimentada() int { return e.quantidade }
func (e *EstoqueAtualizado) Motivo() string             { return e.motivo }
func (e *EstoqueAtualizado) Payload() map[string]any {
	return map[string]any{
		"medicamento_id": e.medicamentoID.Valor(),
		"nome":           e.nome,
		"quantidade":     e.quantidade,
		"motivo":         e.motivo,
	}
}

type EstoqueBaixo struct {
	shared.EventMeta
	medicamentoID    ID
	nome             string
	quantidadeAtual  int
	quantidadeMinima int
}

func NewEstoqueBaixo(id ID, nome string, atual, minima int) *EstoqueBaixo {
	return &EstoqueBaixo{
		EventMeta:        shared.NewEventMeta(),
		medicamentoID:    id,
		nome:             nome,
		quantidadeAtual:  atual,
		quantidadeMinima: minima,
	}
}

func (e *EstoqueBaixo) EventName() string       { return EventEstoqueBaixo }
func (e *EstoqueBaixo) GetAggregateID() string  { return e.medicamentoID.String() }
func (e *EstoqueBaixo) MedicamentoID() ID       { return e.medicamentoID }
func (e *EstoqueBaixo) NomeMedicamento() string { return e.nome }
func (e *EstoqueBaixo) QuantidadeAtual() int    { return e.quantidadeAtual }
func (e *EstoqueBaixo) QuantidadeMinima() int   { return e.quantidadeMinima }
func (e *EstoqueBaixo) Payload() map[string]any {
	return map[string]any{
		"medicamento_id":    e.medicamentoID.Valor(),
		"nome":              e.nome,
		"quantidade_atual":  e.quantidadeAtual,
		"quantidade_minima": e.quantidadeMinima,
	}
}

type LocalArmazenamentoAlterado struct {
	shared.EventMeta
	medicamentoID ID
	nome          string
	localAnterior string
	localNovo     string
}

func NewLocalArmazenamentoAlterado(id ID, nome, anterior, novo string) *LocalArmazenamentoAlterado {
	return &LocalArmazenamentoAlterado{
		EventMeta:     shared.NewEventMeta(),
		medicamentoID: id,
		nome:          nome,
		localAnterior: anterior,
		localNovo:     novo,
	}
}

func (e *LocalArmazenamentoAlterado) EventName() string       { return EventLocalArmazenamentoAlterado }
func (e *LocalArmazenamentoAlterado) GetAggregateID() string  { return e.medicamentoID.String() }
func (e *LocalArmazenamentoAlterado) MedicamentoID() ID       { return e.medicamentoID }
func (e *LocalArmazenamentoAlterado) NomeMedicamento() string { return e.nome }
func (e *LocalArmazenamentoAlterado) LocalAnterior() string   { return e.localAnterior }
func (e *LocalArmazenamentoAlterado) LocalNovo() string       { return e.localNovo }
func (e *LocalArmazenamentoAlterado) Payload() map[string]any {
	return map[string]any{
		"medicamento_id": e.medicamentoID.Valor(),
		"nome":           e.nome,
		"local_anterior": e.localAnterior,
		"local_novo":     e.localNovo,
	}
}

type MedicamentoVencendo struct {
	shared.EventMeta
	medicamentoID      ID
	nome               string
	dataValidade       time.Time
	diasParaVencimento int
}

func NewMedicamentoVencendo(id ID, nome string, dataValidade time.Time, dias int) *MedicamentoVencendo {
	return &MedicamentoVencendo{
		EventMeta:          shared.NewEventMeta(),
		medicamentoID:      id,
		nome:               nome,
		dataValidade:       dataValidade,
		diasParaVencimento: dias,
	}
}

func (e *MedicamentoVencendo) EventName() string       { return EventMedicamentoVencendo }
func (e *MedicamentoVencendo) GetAggregateID() string  { return e.medicamentoID.String() }
func (e *MedicamentoVencendo) MedicamentoID() ID       { return e.medicamentoID }
func (e *MedicamentoVencendo) NomeMedicamento() string { return e.nome }
func (e *MedicamentoVencendo) DataValidade() time.Time { return e.dataValidade }
func (e *MedicamentoVencendo) DiasParaVencimento() int { return e.diasParaVencimento }
func (e *MedicamentoVencendo) Payload() map[string]any {
	return map[string]any{
		"medicamento_id":       e.medicamentoID.Valor(),
		"nome":                 e.nome,
		"data_validade":        e.dataValidade.Format(time.DateOnly),
		"dias_para_vencimento": e.diasParaVencimento,
	}
}

type MedicamentoVencido struct {
	shared.EventMeta
	medicamentoID     ID
	nome              string
	dataValidade      time.Time
	quantidadeVencida int
}

func NewMedicamentoVencido(id ID, nome string, dataValidade time.Time, quantidade int) *MedicamentoVencido {
	return &MedicamentoVencido{
		EventMeta:         shared.NewEventMeta(),
		medicamentoID:     id,
		nome:              nome,
		dataValidade:      dataValidade,
		quantidadeVencida: quantidade,
	}
}

func (e *MedicamentoVencido) EventName() string       { return EventMedicamentoVencido }
func (e *MedicamentoVencido) GetAggregateID() string  { return e.medicamentoID.String() }
func (e *MedicamentoVencido) MedicamentoID() ID       { return e.medicamentoID }
func (e *MedicamentoVencido) NomeMedicamento() string { return e.nome }
func (e *MedicamentoVencido) DataValidade() time.Time { return e.dataValidade }
func (e *MedicamentoVencido) QuantidadeVencida() int  { return e.quantidadeVencida }
func (e *MedicamentoVencido) Payload() map[string]any {
	return map[string]any{
		"medicamento_id":     e.medicamentoID.Valor(),
		"nome":               e.nome,
		"data_validade":      e.dataValidade.Format(time.DateOnly),
		"quantidade_vencida": e.quantidadeVencida,
	}
}

// ============================================================================
// Re-identification
// ============================================================================

// Events recorded before the first save carry a zero id. comID returns a copy
// bound to the storage-assigned id; event id and timestamp are kept.
type reidentificavel interface {
	comID(id ID) shared.DomainEvent
}

func (e *MedicamentoCadastrado) comID(id ID) shared.DomainEvent {
	c := *e
	c.medicamentoID = id
	return &c
}

func (e *EstoqueAtualizado) comID(id ID) shared.DomainEvent {
	c := *e
	c.medicamentoID = id
	return &c
}

func (e *EstoqueBaixo) comID(id ID) shared.DomainEvent {
	c := *e
	c.medicamentoID = id
	return &c
}

func (e *LocalArmazenamentoAlterado) comID(id ID) shared.DomainEvent {
	c := *e
	c.medicamentoID = id
	return &c
}

func (e *MedicamentoVencendo) comID(id ID) shared.DomainEvent {
	c := *e
	c.medicamentoID = id
	return &c
}

func (e *MedicamentoVencido) comID(id ID) shared.DomainEvent {
	c := *e
	c.medicamentoID = id
	return &c
}

var (
	_ shared.DomainEvent = (*MedicamentoCadastrado)(nil)
	_ shared.DomainEvent = (*EstoqueAtualizado)(nil)
	_ shared.DomainEvent = (*EstoqueBaixo)(nil)
	_ shared.DomainEvent = (*LocalArmazenamentoAlterado)(nil)
	_ shared.DomainEvent = (*MedicamentoVencendo)(nil)
	_ shared.DomainEvent = (*MedicamentoVencido)(nil)
)
