package domain

import "time"

// Intake son los datos de ingreso que personalizan el escenario inicial.
type Intake struct {
	Name     string `json:"name"`
	Stage    string `json:"stage"`    // Ej: "Class 12"
	Locale   string `json:"locale"`   // Ej: "Pune"
	Language string `json:"language"` // Idioma en el que se narra el quiz
}

// Missing devuelve los nombres JSON de los campos vacios.
func (i Intake) Missing() []string {
	var missing []string
	if isBlank(i.Name) {
		missing = append(missing, "name")
	}
	if isBlank(i.Stage) {
		missing = append(missing, "stage")
	}
	if isBlank(i.Locale) {
		missing = append(missing, "locale")
	}
	if isBlank(i.Language) {
		missing = append(missing, "language")
	}
	return missing
}

// User es el documento users/{uid}.
type User struct {
	ID        string    `json:"id"`
	Intake    Intake    `json:"intake"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
