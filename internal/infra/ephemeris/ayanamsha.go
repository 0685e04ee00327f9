package ephemeris

// Sidereal mode codes, numbered like the common ephemeris libraries.
const (
	SiderealFaganBradley = 0
	SiderealLahiri       = 1
	SiderealRaman        = 3
	SiderealKrishnamurti = 5
)

// ayanamshaAtJ2000 holds each model's offset at J2000 in degrees.
var ayanamshaAtJ2000 = map[int]float64{
	SiderealFaganBradley: 24.740300,
	SiderealLahiri:       23.857092,
	SiderealRaman:        22.410791,
	SiderealKrishnamurti: 23.760240,
}

// Ayanamsha returns the offset between the tropical and sidereal zodiac for a
// mode at t centuries from J2000. The models share the precession rate.
func Ayanamsha(mode int, t float64) (float64, bool) {
	base, ok := ayanamshaAtJ2000[mode]
	if !ok {
		return 0, false
	}
	return base + precession(t), true
}
