package categoria

import (
	"strings"
	"testing"

	"meusmedicamentos/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		nome    string
		cor     string
		wantErr string
	}{
		{name: "valid without color", nome: "Vitaminas"},
		{name: "valid with color", nome: "Vitaminas", cor: "#1a2B3c"},
		{name: "name at limit", nome: strings.Repeat("x", 50)},
		{name: "empty name", nome: "  ", wantErr: "Nome da categoria é obrigatório"},
		{name: "name too long", nome: strings.Repeat("x", 51), wantErr: "Nome da categoria deve ter no máximo 50 caracteres"},
		{name: "invalid hex", nome: "Vitaminas", cor: "#ZZZZZZ", wantErr: "Cor deve estar no formato hexadecimal (#RRGGBB)"},
		{name: "short hex", nome: "Vitaminas", cor: "#FFF", wantErr: "Cor deve estar no formato hexadecimal (#RRGGBB)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.nome, "", tt.cor)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, shared.IsDomainRule(err))
				assert.Equal(t, tt.wantErr, err.Error())
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.True(t, c.Ativo())
			assert.Nil(t, c.AtualizadoEm())
			assert.Empty(t, c.PullEvents())
		})
	}
}

func TestAtualizar(t *testing.T) {
	c, err := New("Analgésicos", "dor", "")
	require.NoError(t, err)

	err = c.Atualizar("Analgésicos e antitérmicos", "dor e febre", "#FF0000")
	require.NoError(t, err)
	assert.Equal(t, "Analgésicos e antitérmicos", c.Nome())
	assert.Equal(t, "#FF0000", c.Cor())
	assert.NotNil(t, c.AtualizadoEm())

	err = c.Atualizar("Outro", "", "vermelho")
	require.Error(t, err)
	assert.Equal(t, "Analgésicos e antitérmicos", c.Nome(), "failed update must not change state")
}

func TestDesativarAtivar(t *testing.T) {
	c, err := New("Vitaminas", "", "")
	require.NoError(t, err)

	c.Desativar()
	assert.False(t, c.Ativo())
	c.Ativar()
	assert.True(t, c.Ativo())
	assert.Empty(t, c.PullEvents())
}

func TestEqualsByIdentity(t *testing.T) {
	a := RebuildFromDTO(ReconstructionDTO{ID: 7, Nome: "A"})
	b := RebuildFromDTO(ReconstructionDTO{ID: 7, Nome: "B"})
	c := RebuildFromDTO(ReconstructionDTO{ID: 8, Nome: "A"})

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}
