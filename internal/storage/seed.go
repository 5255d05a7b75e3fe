package storage

import "github.com/lolocuentaps32/fanscopa/internal/models"

// SeedRegistrations returns the demo records served when the local slot has
// never been written. They exist to keep the portal demonstrable without a
// reachable backend, not as a business default.
func SeedRegistrations() []models.Registration {
	return []models.Registration{
		{
			OrdenRegistro:  360,
			FechaRegistro:  "04/02/2026",
			HoraRegistro:   "18:19:07",
			Nombre:         "Marco",
			Apellidos:      "Urbano Castilla",
			Abonado:        true,
			Prioritario:    true,
			VIP:            false,
			Solicitud:      "Abono Copa",
			Email:          "manuel.urba@gmail.com",
			CP:             "13300",
			DNI:            "45738884A",
			Direccion:      "Francisco Morales Nieva 2",
			FechaNac:       "3/06/2022",
			Localidad:      "Valdepeñas",
			Telefono:       "648251815",
			Observaciones:  "",
			AceptacionCom:  true,
			AceptacionTerm: true,
			Status:         models.StatusAccepted,
		},
		{
			OrdenRegistro:  589,
			FechaRegistro:  "05/02/2026",
			HoraRegistro:   "19:40:22",
			Nombre:         "Marco",
			Apellidos:      "Navarro Rubio",
			Abonado:        false,
			Prioritario:    false,
			VIP:            false,
			Solicitud:      "Entrada Cuartos de Final",
			Email:          "marco.navarro@gmail.com",
			CP:             "13300",
			DNI:            "71371668T",
			Direccion:      "Salida Membrilla",
			FechaNac:       "29/11/2007",
			Localidad:      "Valdepeñas",
			Telefono:       "640664250",
			Observaciones:  "",
			AceptacionCom:  true,
			AceptacionTerm: true,
			Status:         models.StatusPending,
		},
	}
}
