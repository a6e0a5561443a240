package domain

// TraitProfile es el perfil de rasgos sintetizado a partir del transcript.
type TraitProfile struct {
	CoreMotivators       []string `json:"coreMotivators"`       // 2-3 etiquetas
	ProblemSolvingStyle  string   `json:"problemSolvingStyle"`  // una etiqueta
	PreferredEnvironment string   `json:"preferredEnvironment"` // una etiqueta
	KeyAptitudes         []string `json:"keyAptitudes"`         // 3-4 etiquetas
	Interests            []string `json:"interests"`            // 2-3 etiquetas
	PersonalitySummary   string   `json:"personalitySummary"`   // un parrafo
}

// Missing devuelve los campos requeridos ausentes o vacios.
func (p TraitProfile) Missing() []string {
	var missing []string
	if !hasLabels(p.CoreMotivators) {
		missing = append(missing, "coreMotivators")
	}
	if isBlank(p.ProblemSolvingStyle) {
		missing = append(missing, "problemSolvingStyle")
	}
	if isBlank(p.PreferredEnvironment) {
		missing = append(missing, "preferredEnvironment")
	}
	if !hasLabels(p.KeyAptitudes) {
		missing = append(missing, "keyAptitudes")
	}
	if !hasLabels(p.Interests) {
		missing = append(missing, "interests")
	}
	if isBlank(p.PersonalitySummary) {
		missing = append(missing, "personalitySummary")
	}
	return missing
}

// Complete reporta si los seis campos estan presentes.
func (p TraitProfile) Complete() bool {
	return len(p.Missing()) == 0
}

func hasLabels(labels []string) bool {
	if len(labels) == 0 {
		return false
	}
	for _, l := range labels {
		if isBlank(l) {
			return false
		}
	}
	return true
}
