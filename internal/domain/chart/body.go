package chart

// Body identifies a celestial body known to the ephemeris provider.
type Body int

// Body identifiers share the numbering used by common ephemeris libraries.
const (
	Sun      Body = 0
	Moon     Body = 1
	Mercury  Body = 2
	Venus    Body = 3
	Mars     Body = 4
	Jupiter  Body = 5
	Saturn   Body = 6
	Uranus   Body = 7
	Neptune  Body = 8
	Pluto    Body = 9
	MeanNode Body = 10
)

// CanonicalBodies is the fixed order in which a chart lists bodies.
var CanonicalBodies = []Body{
	Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto, MeanNode,
}

var bodyNames = map[Body]string{
	Sun:      "Sun",
	Moon:     "Moon",
	Mercury:  "Mercury",
	Venus:    "Venus",
	Mars:     "Mars",
	Jupiter:  "Jupiter",
	Saturn:   "Saturn",
	Uranus:   "Uranus",
	Neptune:  "Neptune",
	Pluto:    "Pluto",
	MeanNode: "Rahu (North Node)",
}

// String returns the display name used in chart results.
func (b Body) String() string {
	if name, ok := bodyNames[b]; ok {
		return name
	}
	return "Unknown"
}

// Sign is a zodiac sign index, Aries = 0 through Pisces = 11.
type Sign int

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer",
	"Leo", "Virgo", "Libra", "Scorpio",
	"Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignNames returns the twelve sign names in zodiacal order.
func SignNames() []string {
	out := make([]string, len(signNames))
	copy(out, signNames[:])
	return out
}

func (s Sign) String() string {
	return signNames[((int(s)%12)+12)%12]
}
