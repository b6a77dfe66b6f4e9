package medicamento

import (
	"fmt"
	"strings"
)

// FormaFarmaceutica is the pharmaceutical form of an item.
type FormaFarmaceutica int

const (
	FormaComprimido FormaFarmaceutica = iota
	FormaCapsula
	FormaXarope
	FormaSolucao
	FormaCreme
	FormaPomada
	FormaSpray
	FormaGotas
	FormaInjecao
	FormaSupositorio
	FormaAdesivo
	FormaGel
)

var formaNomes = [...]string{
	"Comprimido", "Capsula", "Xarope", "Solucao", "Creme", "Pomada",
	"Spray", "Gotas", "Injecao", "Supositorio", "Adesivo", "Gel",
}

func (f FormaFarmaceutica) String() string {
	if f.Valida() {
		return formaNomes[f]
	}
	return fmt.Sprintf("FormaFarmaceutica(%d)", int(f))
}

func (f FormaFarmaceutica) Valida() bool {
	return f >= FormaComprimido && f <= FormaGel
}

// ParseFormaFarmaceutica accepts the name, case-insensitively.
func ParseFormaFarmaceutica(s string) (FormaFarmaceutica, error) {
	for i, nome := range formaNomes {
		if strings.EqualFold(nome, strings.TrimSpace(s)) {
			return FormaFarmaceutica(i), nil
		}
	}
	return 0, fmt.Errorf("forma farmacêutica desconhecida: %q", s)
}

// FormasFarmaceuticas lists every form in declaration order.
func FormasFarmaceuticas() []FormaFarmaceutica {
	out := make([]FormaFarmaceutica, len(formaNomes))
	for i := range formaNomes {
		out[i] = FormaFarmaceutica(i)
	}
	return out
}
