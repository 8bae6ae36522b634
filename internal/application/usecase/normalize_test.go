package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// La clave de búsqueda debe ser insensible a acentos, mayúsculas y espacios.
func TestNormalizeTerm(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ndlovú", "ndlovu"},
		{"  María José  ", "maria jose"},
		{"PÉREZ", "perez"},
		{"van der Merwe", "van der merwe"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, normalizeTerm(c.in), "entrada: %q", c.in)
	}
}
