package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEnum is returned when a value is outside an enumeration's set.
var ErrInvalidEnum = errors.New("invalid enumeration value")

// Role enum
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RolePsychologist Role = "PSICOLOGO"
	RolePatient      Role = "PACIENTE"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusReserved  AppointmentStatus = "RESERVADA"
	StatusCompleted AppointmentStatus = "COMPLETADA"
	StatusCancelled AppointmentStatus = "CANCELADA"
)

// Modality is how a session takes place.
type Modality string

const (
	ModalityInPerson Modality = "PRESENCIAL"
	ModalityVideo    Modality = "VIDEOLLAMADA"
)

// PaymentMethod is the channel a payment was made through.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "EFECTIVO"
	MethodCard     PaymentMethod = "TARJETA"
	MethodYape     PaymentMethod = "YAPE"
	MethodPlin     PaymentMethod = "PLIN"
	MethodTransfer PaymentMethod = "TRANSFERENCIA"
)

// PaymentStatus represents the state of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDIENTE"
	PaymentCompleted PaymentStatus = "COMPLETADO"
	PaymentFailed    PaymentStatus = "FALLIDO"
	PaymentRefunded  PaymentStatus = "REEMBOLSADO"
)

// NoteType represents the kind of clinical note
type NoteType string

const (
	NoteInitialAssessment NoteType = "EVALUACION_INICIAL"
	NoteFollowUp          NoteType = "SEGUIMIENTO"
	NoteClosing           NoteType = "CIERRE"
	NoteEmergency         NoteType = "EMERGENCIA"
)

// FunctionalityLevel is the patient's functioning as assessed in a note.
type FunctionalityLevel string

const (
	FunctionalityHigh   FunctionalityLevel = "ALTO"
	FunctionalityMedium FunctionalityLevel = "MEDIO"
	FunctionalityLow    FunctionalityLevel = "BAJO"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePsychologist, RolePatient:
		return true
	}
	return false
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusReserved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (m Modality) Valid() bool {
	switch m {
	case ModalityInPerson, ModalityVideo:
		return true
	}
	return false
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodYape, MethodPlin, MethodTransfer:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func (t NoteType) Valid() bool {
	switch t {
	case NoteInitialAssessment, NoteFollowUp, NoteClosing, NoteEmergency:
		return true
	}
	return false
}

func (l FunctionalityLevel) Valid() bool {
	switch l {
	case FunctionalityHigh, FunctionalityMedium, FunctionalityLow:
		return true
	}
	return false
}

type enum interface {
	~string
	Valid() bool
}

// parseEnum normalizes the raw value and checks it against the enum's set.
func parseEnum[E enum](kind, raw string) (E, error) {
	e := E(strings.ToUpper(strings.TrimSpace(raw)))
	if !e.Valid() {
		var zero E
		return zero, fmt.Errorf("%w: %s %q", ErrInvalidEnum, kind, raw)
	}
	return e, nil
}

func ParseRole(raw string) (Role, error) { return parseEnum[Role]("role", raw) }

func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	return parseEnum[AppointmentStatus]("estado", raw)
}

func ParseModality(raw string) (Modality, error) { return parseEnum[Modality]("modalidad", raw) }

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	return parseEnum[PaymentMethod]("metodoPago", raw)
}

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	return parseEnum[PaymentStatus]("estado", raw)
}

func ParseNoteType(raw string) (NoteType, error) { return parseEnum[NoteType]("tipoNota", raw) }

func ParseFunctionalityLevel(raw string) (FunctionalityLevel, error) {
	return parseEnum[FunctionalityLevel]("nivelFuncionalidad", raw)
}

// UnmarshalText implementations make every JSON boundary reject unknown values.

func (r *Role) UnmarshalText(b []byte) (err error) {
	*r, err = ParseRole(string(b))
	return err
}

func (s *AppointmentStatus) UnmarshalText(b []byte) (err error) {
	*s, err = ParseAppointmentStatus(string(b))
	return err
}

func (m *Modality) UnmarshalText(b []byte) (err error) {
	*m, err = ParseModality(string(b))
	return err
}

func (m *PaymentMethod) UnmarshalText(b []byte) (err error) {
	*m, err = ParsePaymentMethod(string(b))
	return err
}

func (s *PaymentStatus) UnmarshalText(b []byte) (err error) {
	*s, err = ParsePaymentStatus(string(b))
	return err
}

func (t *NoteType) UnmarshalText(b []byte) (err error) {
	*t, err = ParseNoteType(string(b))
	return err
}

func (l *FunctionalityLevel) UnmarshalText(b []byte) (err error) {
	*l, err = ParseFunctionalityLevel(string(b))
	return err
}
