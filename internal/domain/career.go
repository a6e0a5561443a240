package domain

// CareerPathCount es la cantidad exacta de caminos que debe traer un CareerAdvice.
const CareerPathCount = 5

// CareerPath es una carrera inventada para el perfil.
type CareerPath struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Valid reporta si titulo y descripcion estan presentes.
func (c CareerPath) Valid() bool {
	return !isBlank(c.Title) && !isBlank(c.Description)
}

// CareerAdvice agrupa la direccion general y los cinco caminos.
type CareerAdvice struct {
	Direction string       `json:"direction"`
	Paths     []CareerPath `json:"paths"`
}

// Valid aplica la invariante: direccion no vacia y exactamente cinco caminos completos.
func (a CareerAdvice) Valid() bool {
	if isBlank(a.Direction) || len(a.Paths) != CareerPathCount {
		return false
	}
	for _, p := range a.Paths {
		if !p.Valid() {
			return false
		}
	}
	return true
}
