package medicamento

import "strconv"

// ID is the surrogate key of a Medicamento.
type ID int

func NewID(valor int) ID { return ID(valor) }

func (id ID) Valor() int { return int(id) }

func (id ID) IsZero() bool { return id == 0 }

func (id ID) String() string { return strconv.Itoa(int(id)) }
