// Package password hashea y verifica contraseñas con bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher aplica bcrypt con un costo fijo. Cada Hash usa una sal aleatoria.
type Hasher struct {
	cost  int
	dummy []byte // digest de relleno para emails inexistentes
}

// NewHasher construye el hasher. Un costo fuera de rango usa bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("backoffice-dummy"), cost)
	return &Hasher{cost: cost, dummy: dummy}
}

// Hash devuelve el digest bcrypt del texto plano.
func (h *Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(digest), nil
}

// Verify indica si plain corresponde al digest. La comparación de bcrypt es de tiempo constante;
// un digest corrupto o vacío simplemente no verifica.
func (h *Hasher) Verify(plain, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	return err == nil
}

// VerifyMissing compara contra un digest de relleno con el mismo costo y siempre devuelve false.
// Se usa cuando el email no existe para que la respuesta tarde lo mismo que una contraseña errónea.
func (h *Hasher) VerifyMissing(plain string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
	return false
}
