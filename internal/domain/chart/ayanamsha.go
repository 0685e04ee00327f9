package chart

// Ayanamsha selects the sidereal offset model a provider applies.
type Ayanamsha int

// Mode codes match the sidereal mode numbering of common ephemeris libraries.
const (
	AyanamshaFaganBradley Ayanamsha = 0
	AyanamshaLahiri       Ayanamsha = 1
	AyanamshaRaman        Ayanamsha = 3
	AyanamshaKrishnamurti Ayanamsha = 5
)

// DefaultAyanamsha is used for any name outside the recognised set.
const DefaultAyanamsha = AyanamshaLahiri

var ayanamshaByName = map[string]Ayanamsha{
	"lahiri":        AyanamshaLahiri,
	"fagan_bradley": AyanamshaFaganBradley,
	"krishnamurti":  AyanamshaKrishnamurti,
	"raman":         AyanamshaRaman,
}

// ResolveAyanamsha maps a model name to its mode code. Unknown names fall back
// to Lahiri instead of failing.
func ResolveAyanamsha(name string) Ayanamsha {
	if mode, ok := ayanamshaByName[name]; ok {
		return mode
	}
	return DefaultAyanamsha
}

// IsKnownAyanamsha reports whether the name is in the recognised set.
func IsKnownAyanamsha(name string) bool {
	_, ok := ayanamshaByName[name]
	return ok
}

// String returns the canonical model name.
func (a Ayanamsha) String() string {
	for name, mode := range ayanamshaByName {
		if mode == a {
			return name
		}
	}
	return "unknown"
}
