// Package fire holds the domain model for Spanish forest-fire records:
// administrative code tables, fire size classification and KPI calculations.
package fire

import "fmt"

// Administrative codes used in the source dataset. Communities are Spain's
// first-level divisions, provinces the second level.
const (
	CommunityPaisVasco        = 1
	CommunityCataluna         = 2
	CommunityGalicia          = 3
	CommunityAndalucia        = 4
	CommunityAsturias         = 5
	CommunityCantabria        = 6
	CommunityLaRioja          = 7
	CommunityMurcia           = 8
	CommunityValencia         = 9
	CommunityAragon           = 10
	CommunityCastillaLaMancha = 11
	CommunityCanarias         = 12
	CommunityNavarra          = 13
	CommunityExtremadura      = 14
	CommunityBaleares         = 15
	CommunityMadrid           = 16
	CommunityCastillaLeon     = 17
	CommunityCeuta            = 18
	CommunityMelilla          = 19
)

// Cause codes as recorded in the dataset.
const (
	CauseLightning    = 1
	CauseNegligence   = 2
	CauseAccident     = 3
	CauseIntentional  = 4
	CauseUnknown      = 5
	CauseRekindled    = 6
)

// communityNames maps community codes to their official names.
var communityNames = map[int]string{
	CommunityPaisVasco:        "País Vasco",
	CommunityCataluna:         "Cataluña",
	CommunityGalicia:          "Galicia",
	CommunityAndalucia:        "Andalucía",
	CommunityAsturias:         "Principado de Asturias",
	CommunityCantabria:        "Cantabria",
	CommunityLaRioja:          "La Rioja",
	CommunityMurcia:           "Región de Murcia",
	CommunityValencia:         "Comunitat Valenciana",
	CommunityAragon:           "Aragón",
	CommunityCastillaLaMancha: "Castilla - La Mancha",
	CommunityCanarias:         "Canarias",
	CommunityNavarra:          "Comunidad Foral de Navarra",
	CommunityExtremadura:      "Extremadura",
	CommunityBaleares:         "Illes Balears",
	CommunityMadrid:           "Comunidad de Madrid",
	CommunityCastillaLeon:     "Castilla y León",
	CommunityCeuta:            "Ceuta",
	CommunityMelilla:          "Melilla",
}

// provinceNames maps province codes (1-52) to their names.
var provinceNames = map[int]string{
	1:  "Araba",
	2:  "Albacete",
	3:  "Alacant",
	4:  "Almería",
	5:  "Ávila",
	6:  "Badajoz",
	7:  "Illes Balears",
	8:  "Barcelona",
	9:  "Burgos",
	10: "Cáceres",
	11: "Cádiz",
	12: "Castelló",
	13: "Ciudad Real",
	14: "Córdoba",
	15: "A Coruña",
	16: "Cuenca",
	17: "Girona",
	18: "Granada",
	19: "Guadalajara",
	20: "Gipuzcoa",
	21: "Huelva",
	22: "Huesca",
	23: "Jaén",
	24: "León",
	25: "Lleida",
	26: "La Rioja",
	27: "Lugo",
	28: "Madrid",
	29: "Málaga",
	30: "Murcia",
	31: "Navarra",
	32: "Ourense",
	33: "Asturias",
	34: "Palencia",
	35: "Las Palmas",
	36: "Pontevedra",
	37: "Salamanca",
	38: "Santa Cruz de Tenerife",
	39: "Cantabria",
	40: "Segovia",
	41: "Sevilla",
	42: "Soria",
	43: "Tarragona",
	44: "Teruel",
	45: "Toledo",
	46: "València",
	47: "Valladolid",
	48: "Bizkaia",
	49: "Zamora",
	50: "Zaragoza",
	51: "Ceuta",
	52: "Melilla",
}

// causeNames maps cause codes to their display names.
var causeNames = map[int]string{
	CauseLightning:   "Por rayo",
	CauseNegligence:  "Negligencia",
	CauseAccident:    "Accidente",
	CauseIntentional: "Intencionado",
	CauseUnknown:     "De origen desconocido",
	CauseRekindled:   "Reproducido",
}

// CommunityName returns the name for a community code. Unknown codes get a
// formatted fallback so a bad row never fails an aggregate.
func CommunityName(code int) string {
	if name, ok := communityNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Comunidad %d", code)
}

// ProvinceName returns the name for a province code.
func ProvinceName(code int) string {
	if name, ok := provinceNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Provincia %d", code)
}

// CauseName returns the display name for a cause code.
func CauseName(code int) string {
	if name, ok := causeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Causa %d", code)
}

// CauseCodes returns all known cause codes in ascending order.
func CauseCodes() []int {
	return []int{
		CauseLightning,
		CauseNegligence,
		CauseAccident,
		CauseIntentional,
		CauseUnknown,
		CauseRekindled,
	}
}

// CommunityNames returns the names of all known communities, ordered by code.
func CommunityNames() []string {
	names := make([]string, 0, len(communityNames))
	for code := CommunityPaisVasco; code <= CommunityMelilla; code++ {
		names = append(names, communityNames[code])
	}
	return names
}
