/*
Package categoria groups medications (Analgésicos, Vitaminas, ...).

Categoria is a plain entity: it validates itself, supports a soft-delete
toggle and emits no domain events.
*/
package categoria

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"meusmedicamentos/domain/shared"
)

const (
	entityName = "categoria"
	NomeMaxLen = 50
)

var corPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Categoria struct {
	shared.Identity[ID]
	shared.Audit
	shared.EventRecorder

	nome      string
	descricao string
	cor       string
	ativo     bool
	version   int
}

// New validates nome and cor. Empty descricao and cor mean "not informed".
func New(nome, descricao, cor string) (*Categoria, error) {
	if err := validarNome(nome); err != nil {
		return nil, err
	}
	if err := validarCor(cor); err != nil {
		return nil, err
	}

	return &Categoria{
		Audit:     shared.NewAudit(time.Now().UTC()),
		nome:      nome,
		descricao: descricao,
		cor:       cor,
		ativo:     true,
	}, nil
}

// ReconstructionDTO is used by repositories only.
type ReconstructionDTO struct {
	ID           ID
	Nome         string
	Descricao    string
	Cor          string
	Ativo        bool
	Version      int
	CriadoEm     time.Time
	AtualizadoEm *time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Categoria {
	return &Categoria{
		Identity:  shared.NewIdentity(dto.ID),
		Audit:     shared.RestoreAudit(dto.CriadoEm, dto.AtualizadoEm),
		nome:      dto.Nome,
		descricao: dto.Descricao,
		cor:       dto.Cor,
		ativo:     dto.Ativo,
		version:   dto.Version,
	}
}

// Atualizar re-validates and replaces every descriptive field.
func (c *Categoria) Atualizar(nome, descricao, cor string) error {
	if err := validarNome(nome); err != nil {
		return err
	}
	if err := validarCor(cor); err != nil {
		return err
	}

	c.nome = nome
	c.descricao = descricao
	c.cor = cor
	c.MarcarComoAtualizado(time.Now().UTC())
	return nil
}

func (c *Categoria) Desativar() {
	c.ativo = false
	c.MarcarComoAtualizado(time.Now().UTC())
}

func (c *Categoria) Ativar() {
	c.ativo = true
	c.MarcarComoAtualizado(time.Now().UTC())
}

func validarNome(nome string) error {
	if strings.TrimSpace(nome) == "" {
		return shared.NewDomainRuleError(entityName, "nome", "Nome da categoria é obrigatório")
	}
	if utf8.RuneCountInString(nome) > NomeMaxLen {
		return shared.NewDomainRuleError(entityName, "nome", "Nome da categoria deve ter no máximo 50 caracteres")
	}
	return nil
}

func validarCor(cor string) error {
	if cor != "" && !corPattern.MatchString(cor) {
		return shared.NewDomainRuleError(entityName, "cor", "Cor deve estar no formato hexadecimal (#RRGGBB)")
	}
	return nil
}

// Equals compares by id only.
func (c *Categoria) Equals(other *Categoria) bool {
	return other != nil && c.SameIdentity(other.Identity)
}

func (c *Categoria) Nome() string      { return c.nome }
func (c *Categoria) Descricao() string { return c.descricao }
func (c *Categoria) Cor() string       { return c.cor }
func (c *Categoria) Ativo() bool       { return c.ativo }
func (c *Categoria) Version() int      { return c.version }

func (c *Categoria) AggregateID() string { return c.ID().String() }

// IncrementVersionForSave is called by repositories after an optimistic update.
func (c *Categoria) IncrementVersionForSave() { c.version++ }

var _ shared.AggregateRoot = (*Categoria)(nil)
