package medicamento

import (
	"time"

	"meusmedicamentos/application/common"
)

// MedicamentoDTO is the full read model, with the derived status fields the UI shows.
type MedicamentoDTO struct {
	ID                        int         `json:"id"`
	Nome                      string      `json:"nome"`
	PrincipioAtivo            string      `json:"principio_ativo"`
	Dosagem                   string      `json:"dosagem"`
	Forma                     string      `json:"forma"`
	Fabricante                string      `json:"fabricante"`
	DataValidade              common.Date `json:"data_validade"`
	QuantidadeAtual           int         `json:"quantidade_atual"`
	QuantidadeMinima          int         `json:"quantidade_minima"`
	LocalArmazenamento        string      `json:"local_armazenamento"`
	Lote                      string      `json:"lote,omitempty"`
	CodigoBarras              string      `json:"codigo_barras,omitempty"`
	Observacoes               string      `json:"observacoes,omitempty"`
	Ativo                     bool        `json:"ativo"`
	CategoriaID               int         `json:"categoria_id,omitempty"`
	CategoriaNome             string      `json:"categoria_nome,omitempty"`
	CategoriaCor              string      `json:"categoria_cor,omitempty"`
	EstaVencido               bool        `json:"esta_vencido"`
	EstoqueEstaAbaixoDoMinimo bool        `json:"estoque_esta_abaixo_do_minimo"`
	DiasParaVencimento        int         `json:"dias_para_vencimento"`
	StatusVencimento          string      `json:"status_vencimento"`
	StatusEstoque             string      `json:"status_estoque"`
	CriadoEm                  time.Time   `json:"criado_em"`
	AtualizadoEm              *time.Time  `json:"atualizado_em,omitempty"`
}

// MedicamentoResumoDTO is used by alert lists.
type MedicamentoResumoDTO struct {
	ID                 int         `json:"id"`
	Nome               string      `json:"nome"`
	PrincipioAtivo     string      `json:"principio_ativo"`
	Dosagem            string      `json:"dosagem"`
	DataValidade       common.Date `json:"data_validade"`
	QuantidadeAtual    int         `json:"quantidade_atual"`
	LocalArmazenamento string      `json:"local_armazenamento"`
	CategoriaNome      string      `json:"categoria_nome,omitempty"`
	CategoriaCor       string      `json:"categoria_cor,omitempty"`
	EstaVencido        bool        `json:"esta_vencido"`
	VenceEm30Dias      bool        `json:"vence_em_30_dias"`
}

type DashboardDTO struct {
	Geral              EstatisticasGerais     `json:"geral"`
	Vencimento         EstatisticasVencimento `json:"vencimento"`
	Estoque            EstatisticasEstoque    `json:"estoque"`
	Categorias         []CategoriaEstatistica `json:"categorias"`
	MedicamentosAlerta []MedicamentoResumoDTO `json:"medicamentos_alerta"`
}

type EstatisticasGerais struct {
	TotalMedicamentos  int       `json:"total_medicamentos"`
	MedicamentosAtivos int       `json:"medicamentos_ativos"`
	TotalCategorias    int       `json:"total_categorias"`
	UltimaAtualizacao  time.Time `json:"ultima_atualizacao"`
}

type EstatisticasVencimento struct {
	VencidosHoje     int `json:"vencidos_hoje"`
	VencendoEm7Dias  int `json:"vencendo_em_7_dias"`
	VencendoEm30Dias int `json:"vencendo_em_30_dias"`
	VencendoEm90Dias int `json:"vencendo_em_90_dias"`
}

type EstatisticasEstoque struct {
	ComEstoqueNormal int `json:"com_estoque_normal"`
	ComEstoqueBaixo  int `json:"com_estoque_baixo"`
	Esgotados        int `json:"esgotados"`
}

type CategoriaEstatistica struct {
	ID                           int    `json:"id"`
	Nome                         string `json:"nome"`
	Cor                          string `json:"cor,omitempty"`
	TotalMedicamentos            int    `json:"total_medicamentos"`
	MedicamentosVencendoEm30Dias int    `json:"medicamentos_vencendo_em_30_dias"`
	MedicamentosComEstoqueBaixo  int    `json:"medicamentos_com_estoque_baixo"`
}

type SugestaoCompraDTO struct {
	MedicamentoID      int    `json:"medicamento_id"`
	NomeMedicamento    string `json:"nome_medicamento"`
	QuantidadeAtual    int    `json:"quantidade_atual"`
	QuantidadeMinima   int    `json:"quantidade_minima"`
	QuantidadeSugerida int    `json:"quantidade_sugerida"`
	Motivo             string `json:"motivo"`
}
