// Package reports derives financial and clinical statistics from the
// clinic's records. Every function here is read-only.
package reports

import (
	"cmp"
	"slices"
	"strconv"

	"consultorio-server/internal/models"
)

// RecentNotesLimit caps the notes listed in the detailed report.
const RecentNotesLimit = 10

// Snapshot is the data set a report is computed from.
type Snapshot struct {
	Users         []models.User
	Appointments  []models.Appointment
	Payments      []models.Payment
	ClinicalNotes []models.ClinicalNote
}

// PsychologistStats is one psychologist's appointment rollup.
type PsychologistStats struct {
	PsychologistID        uint    `json:"psicologoId"`
	Name                  string  `json:"nombre"`
	TotalAppointments     int     `json:"totalCitas"`
	CompletedAppointments int     `json:"citasCompletadas"`
	Revenue               float64 `json:"ingresos"`
}

// DetailedPsychologistStats adds payment and note counts. Revenue is the sum
// of completed payments instead of paid appointment prices.
type DetailedPsychologistStats struct {
	PsychologistStats
	TotalPayments      int `json:"totalPagos"`
	TotalClinicalNotes int `json:"totalNotasClinicas"`
}

// Summary is the clinic-wide overview.
type Summary struct {
	TotalUsers            int                          `json:"totalUsuarios"`
	TotalPsychologists    int                          `json:"totalPsicologos"`
	TotalPatients         int                          `json:"totalPacientes"`
	TotalAdmins           int                          `json:"totalAdministradores"`
	TotalAppointments     int                          `json:"totalCitas"`
	PendingAppointments   int                          `json:"citasPendientes"`
	CompletedAppointments int                          `json:"citasCompletadas"`
	CancelledAppointments int                          `json:"citasCanceladas"`
	PaidAppointments      int                          `json:"citasPagadas"`
	Revenue               float64                      `json:"ingresoTotal"`
	PendingRevenue        float64                      `json:"ingresosPendientes"`
	Psychologists         map[string]PsychologistStats `json:"estadisticasPsicologos"`
}

// Detailed is the overview that also covers payments and notes.
type Detailed struct {
	TotalUsers         int                                  `json:"totalUsers"`
	TotalAppointments  int                                  `json:"totalAppointments"`
	TotalPayments      int                                  `json:"totalPayments"`
	TotalClinicalNotes int                                  `json:"totalClinicalNotes"`
	Revenue            float64                              `json:"totalIngresos"`
	PendingPayments    int                                  `json:"pagosPendientes"`
	RecentNotes        []models.ClinicalNote                `json:"notasRecientes"`
	Psychologists      map[string]DetailedPsychologistStats `json:"estadisticasPsicologos"`
}

// PsychologistReport covers one psychologist's appointments.
type PsychologistReport struct {
	TotalAppointments     int                  `json:"totalCitas"`
	CompletedAppointments int                  `json:"citasCompletadas"`
	PendingAppointments   int                  `json:"citasPendientes"`
	CancelledAppointments int                  `json:"citasCanceladas"`
	Revenue               float64              `json:"ingresoTotal"`
	UniquePatients        int                  `json:"pacientesUnicos"`
	Appointments          []models.Appointment `json:"appointments"`
}

// PatientReport covers one patient's appointments.
type PatientReport struct {
	TotalAppointments     int                  `json:"totalCitas"`
	CompletedAppointments int                  `json:"citasCompletadas"`
	Spent                 float64              `json:"totalGastado"`
	Outstanding           float64              `json:"pendientePagar"`
	Appointments          []models.Appointment `json:"appointments"`
}

// PatientHistory is everything recorded for one patient.
type PatientHistory struct {
	Patient           *models.User          `json:"paciente"`
	Appointments      []models.Appointment  `json:"appointments"`
	Payments          []models.Payment      `json:"payments"`
	ClinicalNotes     []models.ClinicalNote `json:"clinicalNotes"`
	TotalSessions     int                   `json:"totalSesiones"`
	CompletedSessions int                   `json:"sesionesCompletadas"`
	Spent             float64               `json:"totalGastado"`
	Outstanding       float64               `json:"pendientePagar"`
}

// StatsKey is the key a psychologist's entry is stored under.
func StatsKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// Summarize computes the clinic-wide overview. Revenue counts the price of
// every paid appointment; pending revenue counts reserved, unpaid ones.
// A missing price counts as zero.
func Summarize(s Snapshot) Summary {
	out := Summary{
		TotalUsers:        len(s.Users),
		TotalAppointments: len(s.Appointments),
		Psychologists:     map[string]PsychologistStats{},
	}

	for _, u := range s.Users {
		switch u.Role {
		case models.RolePsychologist:
			out.TotalPsychologists++
		case models.RolePatient:
			out.TotalPatients++
		case models.RoleAdmin:
			out.TotalAdmins++
		}
	}

	for i := range s.Appointments {
		a := &s.Appointments[i]
		switch a.Status {
		case models.StatusReserved:
			out.PendingAppointments++
			if !a.Paid {
				out.PendingRevenue += a.PriceOrZero()
			}
		case models.StatusCompleted:
			out.CompletedAppointments++
		case models.StatusCancelled:
			out.CancelledAppointments++
		}
		if a.Paid {
			out.PaidAppointments++
			out.Revenue += a.PriceOrZero()
		}
	}

	byPsychologist := groupAppointments(s.Appointments)
	for _, u := range psychologists(s.Users) {
		stats := PsychologistStats{PsychologistID: u.ID, Name: u.Name}
		for _, a := range byPsychologist[u.ID] {
			stats.TotalAppointments++
			if a.Status == models.StatusCompleted {
				stats.CompletedAppointments++
			}
			if a.Paid {
				stats.Revenue += a.PriceOrZero()
			}
		}
		out.Psychologists[StatsKey(u.ID)] = stats
	}
	return out
}

// Detail computes the overview that includes payments and clinical notes.
func Detail(s Snapshot) Detailed {
	out := Detailed{
		TotalUsers:         len(s.Users),
		TotalAppointments:  len(s.Appointments),
		TotalPayments:      len(s.Payments),
		TotalClinicalNotes: len(s.ClinicalNotes),
		RecentNotes:        recentNotes(s.ClinicalNotes, RecentNotesLimit),
		Psychologists:      map[string]DetailedPsychologistStats{},
	}

	for _, p := range s.Payments {
		switch p.Status {
		case models.PaymentCompleted:
			out.Revenue += p.Amount
		case models.PaymentPending:
			out.PendingPayments++
		}
	}

	byPsychologist := groupAppointments(s.Appointments)
	for _, u := range psychologists(s.Users) {
		stats := DetailedPsychologistStats{
			PsychologistStats: PsychologistStats{PsychologistID: u.ID, Name: u.Name},
		}
		for _, a := range byPsychologist[u.ID] {
			stats.TotalAppointments++
			if a.Status == models.StatusCompleted {
				stats.CompletedAppointments++
			}
		}
		for _, p := range s.Payments {
			if p.PsychologistID == u.ID && p.Status == models.PaymentCompleted {
				stats.TotalPayments++
				stats.Revenue += p.Amount
			}
		}
		for _, n := range s.ClinicalNotes {
			if n.PsychologistID == u.ID {
				stats.TotalClinicalNotes++
			}
		}
		out.Psychologists[StatsKey(u.ID)] = stats
	}
	return out
}

// ForPsychologist reports on a psychologist's appointments.
func ForPsychologist(appointments []models.Appointment) PsychologistReport {
	out := PsychologistReport{
		TotalAppointments: len(appointments),
		Appointments:      nonNil(appointments),
	}
	patients := map[uint]struct{}{}
	for i := range appointments {
		a := &appointments[i]
		switch a.Status {
		case models.StatusCompleted:
			out.CompletedAppointments++
		case models.StatusReserved:
			out.PendingAppointments++
		case models.StatusCancelled:
			out.CancelledAppointments++
		}
		if a.Paid {
			out.Revenue += a.PriceOrZero()
		}
		patients[a.PatientID] = struct{}{}
	}
	out.UniquePatients = len(patients)
	return out
}

// ForPatient reports on a patient's appointments. Outstanding counts unpaid
// appointments that were not cancelled.
func ForPatient(appointments []models.Appointment) PatientReport {
	out := PatientReport{
		TotalAppointments: len(appointments),
		Appointments:      nonNil(appointments),
	}
	for i := range appointments {
		a := &appointments[i]
		if a.Status == models.StatusCompleted {
			out.CompletedAppointments++
		}
		switch {
		case a.Paid:
			out.Spent += a.PriceOrZero()
		case a.Status != models.StatusCancelled:
			out.Outstanding += a.PriceOrZero()
		}
	}
	return out
}

// History assembles a patient's complete record. Money totals come from
// payments: completed ones are spent, pending ones are outstanding.
func History(patient *models.User, appointments []models.Appointment, payments []models.Payment, notes []models.ClinicalNote) PatientHistory {
	out := PatientHistory{
		Patient:       patient,
		Appointments:  nonNil(appointments),
		Payments:      nonNil(payments),
		ClinicalNotes: recentNotes(notes, len(notes)),
		TotalSessions: len(appointments),
	}
	for _, a := range appointments {
		if a.Status == models.StatusCompleted {
			out.CompletedSessions++
		}
	}
	for _, p := range payments {
		switch p.Status {
		case models.PaymentCompleted:
			out.Spent += p.Amount
		case models.PaymentPending:
			out.Outstanding += p.Amount
		}
	}
	return out
}

func psychologists(users []models.User) []models.User {
	var out []models.User
	for _, u := range users {
		if u.Role == models.RolePsychologist {
			out = append(out, u)
		}
	}
	return out
}

func groupAppointments(appointments []models.Appointment) map[uint][]models.Appointment {
	out := make(map[uint][]models.Appointment)
	for _, a := range appointments {
		out[a.PsychologistID] = append(out[a.PsychologistID], a)
	}
	return out
}

// recentNotes returns up to limit notes, newest first. The input is not
// reordered.
func recentNotes(notes []models.ClinicalNote, limit int) []models.ClinicalNote {
	sorted := slices.Clone(notes)
	slices.SortStableFunc(sorted, func(a, b models.ClinicalNote) int {
		if c := b.WrittenAt.Compare(a.WrittenAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return nonNil(sorted)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
