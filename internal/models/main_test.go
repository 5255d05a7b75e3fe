package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	valid := []Status{StatusPending, StatusProcessing, StatusAccepted, StatusRejected}
	for _, s := range valid {
		assert.True(t, s.Valid(), "status %q should be valid", s)
	}
	invalid := []Status{"", "Perdido", "pendiente", "ACEPTADO"}
	for _, s := range invalid {
		assert.False(t, s.Valid(), "status %q should be invalid", s)
	}
}

func TestRegistrationPatchIsEmpty(t *testing.T) {
	assert.True(t, RegistrationPatch{}.IsEmpty())

	vip := true
	assert.False(t, RegistrationPatch{VIP: &vip}.IsEmpty())
}

func TestRegistrationPatchApply(t *testing.T) {
	reg := Registration{
		OrdenRegistro: 360,
		FechaRegistro: "15/05/2024",
		HoraRegistro:  "10:12:07",
		Nombre:        "Manuel",
		Apellidos:     "Urba",
		DNI:           "45738884A",
		Email:         "manuel.urba@gmail.com",
		Localidad:     "Valdepeñas",
		Status:        StatusAccepted,
	}

	obs := "revisado"
	status := StatusRejected
	vip := true
	got := RegistrationPatch{Observaciones: &obs, Status: &status, VIP: &vip}.Apply(reg)

	assert.Equal(t, "revisado", got.Observaciones)
	assert.Equal(t, StatusRejected, got.Status)
	assert.True(t, got.VIP)

	// Untouched fields survive, including the immutable ones.
	assert.Equal(t, 360, got.OrdenRegistro)
	assert.Equal(t, "15/05/2024", got.FechaRegistro)
	assert.Equal(t, "10:12:07", got.HoraRegistro)
	assert.Equal(t, "Manuel", got.Nombre)
	assert.Equal(t, "45738884A", got.DNI)

	// Apply does not mutate the input.
	assert.Equal(t, "", reg.Observaciones)
	assert.Equal(t, StatusAccepted, reg.Status)
}

func TestRegistrationPatchColumns(t *testing.T) {
	nombre := "Marco"
	abonado := false
	status := StatusProcessing
	p := RegistrationPatch{Nombre: &nombre, Abonado: &abonado, Status: &status}

	cols := p.Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, "Marco", cols["nombre"])
	assert.Equal(t, false, cols["abonado"])
	assert.Equal(t, "Procesando", cols["status"])
}

func TestRegistrationPatchDecode(t *testing.T) {
	// Absent fields stay nil, present fields are captured even when falsy.
	var p RegistrationPatch
	err := json.Unmarshal([]byte(`{"ABONADO":false,"OBSERVACIONES":""}`), &p)
	require.NoError(t, err)

	require.NotNil(t, p.Abonado)
	assert.False(t, *p.Abonado)
	require.NotNil(t, p.Observaciones)
	assert.Equal(t, "", *p.Observaciones)
	assert.Nil(t, p.Status)
	assert.Nil(t, p.Nombre)
}

func TestSessionRoles(t *testing.T) {
	admin := AdminSession("admin@copacrm.com")
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, "", admin.DNI)

	user := UserSession("marco.navarro@gmail.com", "71371668T")
	assert.False(t, user.IsAdmin())
	assert.Equal(t, "71371668T", user.DNI)
	assert.Equal(t, "marco.navarro@gmail.com", user.Email)
}
