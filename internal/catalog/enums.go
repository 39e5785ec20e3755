package catalog

// Closed activity vocabulary. Values round-trip through the store as text,
// so membership is validated at the API boundary, never deeper.

type Category string

const (
	CategoryKayak      Category = "KAYAK"
	CategoryRafting    Category = "RAFTING"
	CategoryTrekking   Category = "TREKKING"
	CategoryPesca      Category = "PESCA"
	CategoryMontanismo Category = "MONTANISMO"
	CategoryCiclismo   Category = "CICLISMO"
	CategoryEscalada   Category = "ESCALADA"
	CategoryOtros      Category = "OTROS"
)

var Categories = []Category{
	CategoryKayak, CategoryRafting, CategoryTrekking, CategoryPesca,
	CategoryMontanismo, CategoryCiclismo, CategoryEscalada, CategoryOtros,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type Difficulty string

// Difficulties are ordered easiest first; the filter-option listing keeps
// this order.
const (
	DifficultyPrincipiante Difficulty = "PRINCIPIANTE"
	DifficultyBasico       Difficulty = "BASICO"
	DifficultyIntermedio   Difficulty = "INTERMEDIO"
	DifficultyAvanzado     Difficulty = "AVANZADO"
	DifficultyExperto      Difficulty = "EXPERTO"
)

var Difficulties = []Difficulty{
	DifficultyPrincipiante, DifficultyBasico, DifficultyIntermedio,
	DifficultyAvanzado, DifficultyExperto,
}

func (d Difficulty) Valid() bool {
	for _, v := range Difficulties {
		if d == v {
			return true
		}
	}
	return false
}

type Duration string

const (
	DurationMedioDia    Duration = "MEDIO_DIA"
	DurationDiaCompleto Duration = "DIA_COMPLETO"
	DurationMultiDia    Duration = "MULTI_DIA"
)

var Durations = []Duration{DurationMedioDia, DurationDiaCompleto, DurationMultiDia}

func (d Duration) Valid() bool {
	for _, v := range Durations {
		if d == v {
			return true
		}
	}
	return false
}
