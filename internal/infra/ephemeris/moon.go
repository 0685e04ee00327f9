package ephemeris

// lunarTerm is one periodic term of the lunar longitude series: multiples of
// D, M, M', F and the amplitude in millionths of a degree.
type lunarTerm struct {
	d, m, mp, f int
	coef        float64
}

var lunarLongitudeTerms = []lunarTerm{
	{0, 0, 1, 0, 6288774},
	{2, 0, -1, 0, 1274027},
	{2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618},
	{0, 1, 0, 0, -185116},
	{0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793},
	{2, -1, -1, 0, 57066},
	{2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758},
	{0, 1, -1, 0, -40923},
	{1, 0, 0, 0, -34720},
	{0, 1, 1, 0, -30383},
	{2, 0, 0, -2, 15327},
	{0, 0, 1, 2, -12528},
	{0, 0, 1, -2, 10980},
	{4, 0, -1, 0, 10675},
	{0, 0, 3, 0, 10034},
	{4, 0, -2, 0, 8548},
	{2, 1, -1, 0, -7888},
	{2, 1, 0, 0, -6766},
	{1, 0, -1, 0, -5163},
	{1, 1, 0, 0, 4987},
	{2, -1, 1, 0, 4036},
	{2, 0, 2, 0, 3994},
}

const kmPerAU = 149597870.7

// moonPosition returns the geocentric tropical longitude and latitude of date
// in degrees and the distance in AU.
func moonPosition(t float64) (lon, lat, dist float64) {
	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t*t
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t*t
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t*t
	mp := 134.9633964 + 477198.8675055*t + 0.0087414*t*t
	f := 93.2720950 + 483202.0175233*t - 0.0036539*t*t
	a1 := 119.75 + 131.849*t
	a2 := 53.09 + 479264.290*t
	e := 1 - 0.002516*t - 0.0000074*t*t

	var sum float64
	for _, term := range lunarLongitudeTerms {
		arg := float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f
		coef := term.coef
		switch abs(term.m) {
		case 1:
			coef *= e
		case 2:
			coef *= e * e
		}
		sum += coef * sind(arg)
	}
	sum += 3958*sind(a1) + 1962*sind(lp-f) + 318*sind(a2)

	lon = normalize(lp + sum/1e6)
	lat = 5.128122*sind(f) + 0.280602*sind(mp+f) + 0.277693*sind(mp-f) + 0.173237*sind(2*d-f)
	distKm := 385000.56 - 20905.355*cosd(mp) - 3699.111*cosd(2*d-mp) - 2955.968*cosd(2*d)
	return lon, lat, distKm / kmPerAU
}

// meanNode returns the tropical longitude of the mean ascending lunar node of date.
func meanNode(t float64) float64 {
	return normalize(125.0445479 - 1934.1362891*t + 0.0020754*t*t + t*t*t/467441.0)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
