package chart

import "time"

// BirthMoment is a validated civil birth time and place.
type BirthMoment struct {
	Year           int
	Month          int
	Day            int
	Hour           int
	Minute         int
	Second         int
	UTCOffsetHours float64
	Latitude       float64
	Longitude      float64
	Ayanamsha      string
}

// JulianDay is a continuous astronomical time scale in days.
type JulianDay float64

// HouseSystem is the single-letter house system code understood by house providers.
type HouseSystem byte

// HouseSystemPlacidus is the only house system the engine is configured for.
const HouseSystemPlacidus HouseSystem = 'P'

// HouseCusps holds the twelve house boundaries; Cusps[0] is house 1.
type HouseCusps struct {
	Cusps     [12]float64
	Ascendant float64
	Midheaven float64
}

// Cusp returns the boundary opening the given 1-based house.
func (h HouseCusps) Cusp(house int) float64 {
	return h.Cusps[(house-1)%12]
}

// BodyPosition is a sidereal ecliptic longitude and its daily motion.
type BodyPosition struct {
	Body      Body
	Longitude float64
	Speed     float64
}

// Placement is the classification of one position against a cusp set.
type Placement struct {
	Sign          Sign
	DegreesInSign float64
	House         int
	Retrograde    bool
}

// PlanetResult is one classified body in a chart.
type PlanetResult struct {
	Name       string  `json:"name"`
	Degrees    float64 `json:"degrees"`
	Sign       string  `json:"sign"`
	House      int     `json:"house"`
	Retrograde bool    `json:"retrograde"`
}

// ChartResult lists classified bodies in canonical order.
type ChartResult struct {
	JulianDay JulianDay      `json:"-"`
	Ayanamsha Ayanamsha      `json:"-"`
	Ascendant float64        `json:"-"`
	Planets   []PlanetResult `json:"planets"`
	Omitted   []Body         `json:"-"`
}

// Request is the payload accepted by the chart endpoint.
type Request struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Day       int     `json:"day"`
	Hours     int     `json:"hours"`
	Minutes   int     `json:"minutes"`
	Seconds   int     `json:"seconds"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  float64 `json:"timezone"`
	Ayanamsha string  `json:"ayanamsha"`
}

// BirthMoment converts the transport payload into the engine input.
func (r Request) BirthMoment() BirthMoment {
	return BirthMoment{
		Year:           r.Year,
		Month:          r.Month,
		Day:            r.Day,
		Hour:           r.Hours,
		Minute:         r.Minutes,
		Second:         r.Seconds,
		UTCOffsetHours: r.Timezone,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		Ayanamsha:      r.Ayanamsha,
	}
}

// Response is returned to the HTTP transport.
type Response struct {
	Planets  []PlanetResult `json:"planets"`
	ChartURL *string        `json:"chart_url"`
}

// HistoryEntry is a persisted chart request.
type HistoryEntry struct {
	ID        string         `json:"id"`
	Request   Request        `json:"request"`
	Timestamp time.Time      `json:"timestamp"`
	Planets   []PlanetResult `json:"planets"`
}
