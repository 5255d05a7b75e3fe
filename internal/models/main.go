// Package models defines the core data structures for registrations,
// user sessions and the assistant boundary.
package models

import "errors"

// ErrNotFound is returned when no registration matches the given identifier.
// It is a valid outcome, not a transport failure, and never triggers the
// local fallback.
var ErrNotFound = errors.New("registration not found")

// Status is the processing state of a registration request.
type Status string

const (
	// StatusPending means the request has been received but not reviewed.
	StatusPending Status = "Pendiente"
	// StatusProcessing means the request is under review.
	StatusProcessing Status = "Procesando"
	// StatusAccepted means the request has been granted.
	StatusAccepted Status = "Aceptado"
	// StatusRejected means the request has been denied.
	StatusRejected Status = "Rechazado"
)

// Valid reports whether s is one of the four allowed status values.
// No other value is valid at rest or in transit.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Registration is one applicant's ticket or season-pass request.
// JSON field names match the portal's wire/local shape.
type Registration struct {
	// OrdenRegistro is the store-assigned order number, immutable once set.
	OrdenRegistro int `json:"ORDEN_REGISTRO"`
	// FechaRegistro is the registration date (dd/mm/yyyy), set at creation.
	FechaRegistro string `json:"FECHA_REGISTRO"`
	// HoraRegistro is the registration time (hh:mm:ss), set at creation.
	HoraRegistro string `json:"HORA_REGISTRO"`
	// Nombre is the applicant's first name.
	Nombre string `json:"NOMBRE"`
	// Apellidos is the applicant's surname(s).
	Apellidos string `json:"APELLIDOS"`
	// Abonado marks season-ticket holders.
	Abonado bool `json:"ABONADO"`
	// Prioritario marks priority applicants.
	Prioritario bool `json:"PRIORITARIO"`
	// VIP marks VIP applicants.
	VIP bool `json:"VIP"`
	// Solicitud is the free-text request type ("Abono Copa", a match tier, ...).
	Solicitud string `json:"SOLICITUD"`
	// Email is the applicant's contact email; together with DNI it
	// identifies the applicant at login.
	Email string `json:"EMAIL"`
	// CP is the postal code.
	CP string `json:"CP"`
	// DNI is the national identity number, the primary key for updates
	// and deletes. Uniqueness is enforced by the backing store's schema.
	DNI string `json:"DNI"`
	// Direccion is the street address.
	Direccion string `json:"DIRECCION"`
	// FechaNac is the birth date (dd/mm/yyyy).
	FechaNac string `json:"FECHA_NAC"`
	// Localidad is the applicant's locality.
	Localidad string `json:"LOCALIDAD"`
	// Telefono is the contact phone number.
	Telefono string `json:"TELEFONO"`
	// Observaciones holds free-text remarks.
	Observaciones string `json:"OBSERVACIONES"`
	// AceptacionCom records consent to marketing communications.
	AceptacionCom bool `json:"ACEPTACION_COM"`
	// AceptacionTerm records acceptance of the terms and conditions.
	AceptacionTerm bool `json:"ACEPTACION_TERM"`
	// Status is the processing state of the request.
	Status Status `json:"STATUS"`
}

// RegistrationPatch is a partial update to a registration. Only non-nil
// fields are applied. The order number and the registration date/time are
// not part of the patch: they are immutable after creation.
type RegistrationPatch struct {
	Nombre         *string `json:"NOMBRE,omitempty"`
	Apellidos      *string `json:"APELLIDOS,omitempty"`
	Abonado        *bool   `json:"ABONADO,omitempty"`
	Prioritario    *bool   `json:"PRIORITARIO,omitempty"`
	VIP            *bool   `json:"VIP,omitempty"`
	Solicitud      *string `json:"SOLICITUD,omitempty"`
	Email          *string `json:"EMAIL,omitempty"`
	CP             *string `json:"CP,omitempty"`
	Direccion      *string `json:"DIRECCION,omitempty"`
	FechaNac       *string `json:"FECHA_NAC,omitempty"`
	Localidad      *string `json:"LOCALIDAD,omitempty"`
	Telefono       *string `json:"TELEFONO,omitempty"`
	Observaciones  *string `json:"OBSERVACIONES,omitempty"`
	AceptacionCom  *bool   `json:"ACEPTACION_COM,omitempty"`
	AceptacionTerm *bool   `json:"ACEPTACION_TERM,omitempty"`
	Status         *Status `json:"STATUS,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p RegistrationPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Apply merges the patch into r and returns the result. Fields not present
// in the patch are left unchanged.
func (p RegistrationPatch) Apply(r Registration) Registration {
	if p.Nombre != nil {
		r.Nombre = *p.Nombre
	}
	if p.Apellidos != nil {
		r.Apellidos = *p.Apellidos
	}
	if p.Abonado != nil {
		r.Abonado = *p.Abonado
	}
	if p.Prioritario != nil {
		r.Prioritario = *p.Prioritario
	}
	if p.VIP != nil {
		r.VIP = *p.VIP
	}
	if p.Solicitud != nil {
		r.Solicitud = *p.Solicitud
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	if p.CP != nil {
		r.CP = *p.CP
	}
	if p.Direccion != nil {
		r.Direccion = *p.Direccion
	}
	if p.FechaNac != nil {
		r.FechaNac = *p.FechaNac
	}
	if p.Localidad != nil {
		r.Localidad = *p.Localidad
	}
	if p.Telefono != nil {
		r.Telefono = *p.Telefono
	}
	if p.Observaciones != nil {
		r.Observaciones = *p.Observaciones
	}
	if p.AceptacionCom != nil {
		r.AceptacionCom = *p.AceptacionCom
	}
	if p.AceptacionTerm != nil {
		r.AceptacionTerm = *p.AceptacionTerm
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	return r
}

// Columns returns the patch as a snake_case column → value map for
// dynamic SQL SET clauses. Only fields present in the patch are included.
func (p RegistrationPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Nombre != nil {
		cols["nombre"] = *p.Nombre
	}
	if p.Apellidos != nil {
		cols["apellidos"] = *p.Apellidos
	}
	if p.Abonado != nil {
		cols["abonado"] = *p.Abonado
	}
	if p.Prioritario != nil {
		cols["prioritario"] = *p.Prioritario
	}
	if p.VIP != nil {
		cols["vip"] = *p.VIP
	}
	if p.Solicitud != nil {
		cols["solicitud"] = *p.Solicitud
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.CP != nil {
		cols["cp"] = *p.CP
	}
	if p.Direccion != nil {
		cols["direccion"] = *p.Direccion
	}
	if p.FechaNac != nil {
		cols["fecha_nac"] = *p.FechaNac
	}
	if p.Localidad != nil {
		cols["localidad"] = *p.Localidad
	}
	if p.Telefono != nil {
		cols["telefono"] = *p.Telefono
	}
	if p.Observaciones != nil {
		cols["observaciones"] = *p.Observaciones
	}
	if p.AceptacionCom != nil {
		cols["aceptacion_com"] = *p.AceptacionCom
	}
	if p.AceptacionTerm != nil {
		cols["aceptacion_term"] = *p.AceptacionTerm
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	return cols
}

// Role identifies what a logged-in session is allowed to do.
type Role string

const (
	// RoleAdmin can see and manage every registration.
	RoleAdmin Role = "admin"
	// RoleUser can see and edit only its own registration.
	RoleUser Role = "user"
)

// Session is the ephemeral identity of a logged-in browser session.
// It exists only between login and logout and is never persisted.
// The role is fixed at construction: use AdminSession or UserSession.
type Session struct {
	// Email is the address the session logged in with.
	Email string `json:"email"`
	// Role is resolved once at login time.
	Role Role `json:"role"`
	// DNI is set for user sessions only; it points at the session's
	// own registration record.
	DNI string `json:"dni,omitempty"`
}

// AdminSession builds a session with administrator rights.
func AdminSession(email string) Session {
	return Session{Email: email, Role: RoleAdmin}
}

// UserSession builds a session bound to a single registration.
func UserSession(email, dni string) Session {
	return Session{Email: email, Role: RoleUser, DNI: dni}
}

// IsAdmin reports whether the session has administrator rights.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	// Role is "user" or "model".
	Role string `json:"role"`
	// Text is the message content.
	Text string `json:"text"`
}

// AnalysisMetrics are the numeric highlights of an assistant summary.
type AnalysisMetrics struct {
	// AbonadosPerc is the percentage of season-ticket holders.
	AbonadosPerc float64 `json:"abonadosPerc"`
	// TopLocations lists the most frequent localities.
	TopLocations []string `json:"topLocations"`
}

// AnalysisReport is the structured summary produced by the assistant
// over the full registration list.
type AnalysisReport struct {
	// Summary is the free-text analysis.
	Summary string `json:"summary"`
	// Metrics carries the numeric highlights.
	Metrics AnalysisMetrics `json:"metrics"`
	// Duplicates lists DNIs that appear more than once, if any.
	Duplicates []string `json:"duplicates,omitempty"`
}
