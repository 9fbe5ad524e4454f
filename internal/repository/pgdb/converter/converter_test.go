package converter

import (
	"testing"
	"time"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestLabelSubmissionConverter(t *testing.T) {
	sub := &usecase.LabelSubmission{
		ID:        "7f1b3a52-2c9c-4d5e-9a57-0c5b8d2e4f10",
		Clusterer: "news",
		Labels:    domain.LabelMap{"d2": "A", "d1": "B"},
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	var conv LabelSubmissionConverter
	model := conv.ToModel(sub)
	assert.Equal(t, 2, model.Total)
	assert.False(t, model.Cleared)

	entries := conv.ToEntryModels(sub)
	assert.Equal(t, []LabelEntryModel{
		{SubmissionID: sub.ID, Document: "d1", Label: "B"},
		{SubmissionID: sub.ID, Document: "d2", Label: "A"},
	}, entries)

	assert.Equal(t, sub, conv.ToEntity(model, entries))
}

func TestClearedSubmissionHasNoEntries(t *testing.T) {
	sub := &usecase.LabelSubmission{ID: "id", Clusterer: "news", Cleared: true}

	var conv LabelSubmissionConverter
	assert.Empty(t, conv.ToEntryModels(sub))
	assert.Equal(t, 0, conv.ToModel(sub).Total)
}
