package common

import (
	"testing"
	"time"

	"meusmedicamentos/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	ok := Success()
	assert.True(t, ok.Succeeded())
	assert.Equal(t, "", ok.ErrorMessage())
	assert.Empty(t, ok.Errors())

	fail := Failure("a", "b")
	assert.True(t, fail.Failed())
	assert.Equal(t, "a; b", fail.ErrorMessage())
	assert.Equal(t, []string{"a", "b"}, fail.Errors())

	single := Failure("único")
	assert.Equal(t, "único", single.ErrorMessage())
	assert.Equal(t, []string{"único"}, single.Errors())
}

func TestNewResultInvariant(t *testing.T) {
	_, err := NewResult(true, []string{"erro"})
	require.Error(t, err)
	assert.True(t, shared.IsDomainRule(err))
	assert.Equal(t, "Resultado de sucesso não pode ter erro", err.Error())

	_, err = NewResult(false, nil)
	require.Error(t, err)
	assert.Equal(t, "Resultado de falha deve ter erro", err.Error())

	_, err = NewResult(false, []string{" ", ""})
	assert.Error(t, err, "blank messages do not count")

	assert.Panics(t, func() { Failure("") })

	r, err := NewResult(true, []string{""})
	require.NoError(t, err)
	assert.True(t, r.Succeeded())
}

func TestResultOf(t *testing.T) {
	r := From(42)
	assert.True(t, r.Succeeded())
	assert.Equal(t, 42, r.Value())

	f := FailureOf[int]("x")
	assert.True(t, f.Failed())
	assert.Equal(t, 0, f.Value())

	dropped, err := NewResultOf(false, 7, []string{"y"})
	require.NoError(t, err)
	assert.Equal(t, 0, dropped.Value(), "failures carry no value")

	_, err = NewResultOf(true, 7, []string{"y"})
	assert.Error(t, err)

	built := FailuresOf[ResultOf[string]]()([]string{"a", "b"})
	assert.Equal(t, "a; b", built.ErrorMessage())
	assert.Equal(t, "", built.Value())
}

func TestErrorsIsACopy(t *testing.T) {
	r := Failure("a")
	errs := r.Errors()
	errs[0] = "mutated"
	assert.Equal(t, []string{"a"}, r.Errors())
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 5, 2, 2)
	assert.Equal(t, 3, p.TotalPaginas)
	assert.True(t, p.TemProximaPagina)
	assert.True(t, p.TemPaginaAnterior)

	empty := NewPage[int](nil, 0, 1, 20)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPaginas)
	assert.False(t, empty.TemProximaPagina)
	assert.False(t, empty.TemPaginaAnterior)
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalJSON([]byte(`"2026-01-31"`)))
	assert.Equal(t, 31, d.Day())

	out, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-31"`, string(out))

	require.NoError(t, d.UnmarshalJSON([]byte(`"2026-02-01T10:00:00Z"`)))
	assert.Equal(t, time.February, d.Month())

	assert.Error(t, d.UnmarshalJSON([]byte(`"31/01/2026"`)))
	require.NoError(t, d.UnmarshalJSON([]byte(`null`)))
	assert.True(t, d.IsZero())
}
