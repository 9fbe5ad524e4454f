package usecase

import (
	"time"

	"github.com/hsm-textlab/workbench/internal/domain"
)

// CLUSTERER USECASE

// PlotSession - снимок графика кластеризатора: точки с текущими метками и параметры выборки.
type PlotSession struct {
	Clusterer   string
	Points      []domain.PlotPoint
	HideUnknown bool
	SampleSize  int
	Method      string
	UpdatedAt   time.Time
}

// LabelSubmission - запись журнала: разметка, отправленная в бэкенд, или ее очистка.
type LabelSubmission struct {
	ID        string
	Clusterer string
	Labels    domain.LabelMap
	Cleared   bool
	CreatedAt time.Time
}

// INFRASTUCTURE

const (
	EventLabelsSaved   = "labels.saved"
	EventLabelsCleared = "labels.cleared"
)

// LabelEvent - событие об изменении разметки кластеризатора.
type LabelEvent struct {
	EventID    string         `json:"event_id"`
	Type       string         `json:"type"`
	Clusterer  string         `json:"clusterer"`
	Total      int            `json:"total"`
	Counts     map[string]int `json:"counts,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// ExportPlotReq - запрос на сохранение отрисованного графика.
type ExportPlotReq struct {
	Clusterer string
	SVG       []byte
}

// ExportPlotRes - расположение сохраненного графика в объектном хранилище.
type ExportPlotRes struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Size   int64  `json:"size"`
}
