package converter

import "time"

// PlotPointRedisModel - точка графика в кэше.
type PlotPointRedisModel struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Label    string  `json:"label"`
	Document string  `json:"document"`
	Idx      int     `json:"idx"`
}

// PlotSessionRedisModel - снимок графика кластеризатора в кэше.
type PlotSessionRedisModel struct {
	Clusterer   string                `json:"clusterer"`
	Points      []PlotPointRedisModel `json:"points"`
	HideUnknown bool                  `json:"hide_unknown"`
	SampleSize  int                   `json:"sample_size"`
	Method      string                `json:"method"`
	UpdatedAt   time.Time             `json:"updated_at"`
}
