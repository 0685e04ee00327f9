package chart

import "time"

// EngineConfig controls how charts are computed.
type EngineConfig struct {
	HouseSystem    HouseSystem
	SiderealHouses bool
}

// Config holds runtime knobs for the chart service.
type Config struct {
	HistoryLimit  int
	CacheTTL      time.Duration
	ArchivePrefix string
}
