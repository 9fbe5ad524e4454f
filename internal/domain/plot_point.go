package domain

// UnknownLabel - метка точки, которой пользователь еще не назначил класс.
const UnknownLabel = "unknown"

// PlotPoint - двумерная проекция одного документа и его текущая метка.
// Idx - индекс точки в исходном массиве, по нему точка находится при взаимодействии.
type PlotPoint struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Label    string  `json:"label"`
	Document string  `json:"document"`
	Idx      int     `json:"idx"`
}

// IsUnknown сообщает, что точка еще не размечена.
func (p PlotPoint) IsUnknown() bool {
	return p.Label == UnknownLabel
}

// LabelMap - соответствие документ → метка, которое отправляется в clusterer/save_labels.
type LabelMap map[string]string
