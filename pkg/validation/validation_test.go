package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("jquispe@muni.gob.pe"))
	assert.True(t, ValidateEmail("  Maria.Lopez@example.com  "))
	assert.False(t, ValidateEmail("sin-arroba.com"))
	assert.False(t, ValidateEmail("usuario@"))
	assert.False(t, ValidateEmail(""))
}

func TestValidateDNI(t *testing.T) {
	assert.True(t, ValidateDNI("45678912"))
	assert.True(t, ValidateDNI(" 04567891 "))
	assert.False(t, ValidateDNI("4567891"))
	assert.False(t, ValidateDNI("456789123"))
	assert.False(t, ValidateDNI("4567891a"))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("Segura123"))
	assert.False(t, ValidatePassword("Corta1"))
	assert.False(t, ValidatePassword("sinmayuscula1"))
	assert.False(t, ValidatePassword("SINMINUSCULA1"))
	assert.False(t, ValidatePassword("SinNumeros"))
}

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("jquispe"))
	assert.True(t, ValidateUsername("user_name-01"))
	assert.False(t, ValidateUsername("ab"))
	assert.False(t, ValidateUsername("con espacios"))
	assert.False(t, ValidateUsername("ñandu"))
}

func TestIsPDFFilename(t *testing.T) {
	assert.True(t, IsPDFFilename("resolucion.pdf"))
	assert.True(t, IsPDFFilename("RESOLUCION.PDF"))
	assert.False(t, IsPDFFilename("foto.png"))
	assert.False(t, IsPDFFilename("pdf"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hola", SanitizeString("  hola  "))
	assert.Equal(t, "ab", SanitizeString("a\x00b"))
}
