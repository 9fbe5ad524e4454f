package converter

import (
	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/labels"
	"github.com/hsm-textlab/workbench/internal/usecase"
)

// LabelSubmissionConverter преобразует записи журнала разметки между usecase и моделями PostgreSQL.
type LabelSubmissionConverter struct{}

func (LabelSubmissionConverter) ToModel(entity *usecase.LabelSubmission) *LabelSubmissionModel {
	return &LabelSubmissionModel{
		ID:        entity.ID,
		Clusterer: entity.Clusterer,
		Cleared:   entity.Cleared,
		Total:     len(entity.Labels),
		CreatedAt: entity.CreatedAt,
	}
}

// ToEntryModels раскладывает карту меток в строки label_entries в порядке документов.
func (LabelSubmissionConverter) ToEntryModels(entity *usecase.LabelSubmission) []LabelEntryModel {
	entries := labels.Entries(entity.Labels)
	models := make([]LabelEntryModel, len(entries))
	for i, entry := range entries {
		models[i] = LabelEntryModel{
			SubmissionID: entity.ID,
			Document:     entry.Document,
			Label:        entry.Label,
		}
	}
	return models
}

func (LabelSubmissionConverter) ToEntity(model *LabelSubmissionModel, entries []LabelEntryModel) *usecase.LabelSubmission {
	labelMap := make(domain.LabelMap, len(entries))
	for _, entry := range entries {
		labelMap[entry.Document] = entry.Label
	}

	return &usecase.LabelSubmission{
		ID:        model.ID,
		Clusterer: model.Clusterer,
		Labels:    labelMap,
		Cleared:   model.Cleared,
		CreatedAt: model.CreatedAt,
	}
}
