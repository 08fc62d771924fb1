package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/backoffice-api/pkg/password"
)

func TestHash_SalAleatoria(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)

	a, err := h.Hash("admin123")
	require.NoError(t, err)
	b, err := h.Hash("admin123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "dos hashes del mismo texto deben diferir por la sal")
	assert.True(t, h.Verify("admin123", a))
	assert.True(t, h.Verify("admin123", b))
}

func TestVerify_ContraseñaIncorrecta(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)
	digest, err := h.Hash("admin123")
	require.NoError(t, err)

	assert.False(t, h.Verify("admin124", digest))
	assert.False(t, h.Verify("", digest))
}

func TestVerify_DigestCorrupto(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("admin123", ""))
	assert.False(t, h.Verify("admin123", "no-es-bcrypt"))
}

func TestVerifyMissing_SiempreFalse(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)
	assert.False(t, h.VerifyMissing("backoffice-dummy"))
}

func TestNewHasher_CostoFueraDeRango(t *testing.T) {
	h := password.NewHasher(99)
	digest, err := h.Hash("x")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
