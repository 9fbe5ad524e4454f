package converter

import (
	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/usecase"
)

// PlotSessionConverter преобразует снимок графика между usecase и моделью кэша.
type PlotSessionConverter struct{}

func (PlotSessionConverter) ToRedisModel(entity *usecase.PlotSession) *PlotSessionRedisModel {
	points := make([]PlotPointRedisModel, len(entity.Points))
	for i, p := range entity.Points {
		points[i] = PlotPointRedisModel{
			X:        p.X,
			Y:        p.Y,
			Label:    p.Label,
			Document: p.Document,
			Idx:      p.Idx,
		}
	}

	return &PlotSessionRedisModel{
		Clusterer:   entity.Clusterer,
		Points:      points,
		HideUnknown: entity.HideUnknown,
		SampleSize:  entity.SampleSize,
		Method:      entity.Method,
		UpdatedAt:   entity.UpdatedAt,
	}
}

func (PlotSessionConverter) ToUseCase(model *PlotSessionRedisModel) *usecase.PlotSession {
	points := make([]domain.PlotPoint, len(model.Points))
	for i, p := range model.Points {
		points[i] = domain.PlotPoint{
			X:        p.X,
			Y:        p.Y,
			Label:    p.Label,
			Document: p.Document,
			Idx:      p.Idx,
		}
	}

	return &usecase.PlotSession{
		Clusterer:   model.Clusterer,
		Points:      points,
		HideUnknown: model.HideUnknown,
		SampleSize:  model.SampleSize,
		Method:      model.Method,
		UpdatedAt:   model.UpdatedAt,
	}
}
