package minio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/usecase"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
)

const svgContentType = "image/svg+xml"

// PlotExporter складывает SVG-графики кластеризаторов в бакет MinIO.
type PlotExporter struct {
	repo   usecase.PlotObjectRepository
	bucket string
	logger logger.Logger
	now    func() time.Time
}

func NewPlotExporter(repo usecase.PlotObjectRepository, bucket string, logger logger.Logger) *PlotExporter {
	return &PlotExporter{
		repo:   repo,
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
}

// Export загружает график под ключом <кластеризатор>/<время>-<uuid>.svg.
func (p *PlotExporter) Export(ctx context.Context, req *usecase.ExportPlotReq) (*usecase.ExportPlotRes, error) {
	const op = "PlotExporter.Export"

	if len(req.SVG) == 0 {
		return nil, e.Wrap(op, e.ErrNoPlot)
	}

	id := uuid.NewString()
	key := objectKey(req.Clusterer, p.now(), id)
	object := domain.NewPlotObject(id, p.bucket, key, req.SVG, svgContentType)

	stored, err := p.repo.Upload(ctx, object)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("upload %s failed: %w", key, err))
	}

	p.logger.Debugf("%s: uploaded %d bytes to %s/%s", op, object.Size(), p.bucket, stored)
	return &usecase.ExportPlotRes{
		Bucket: p.bucket,
		Key:    stored,
		Size:   object.Size(),
	}, nil
}

// objectKey строит ключ объекта. Слэши в имени кластеризатора заменяются,
// чтобы каждый кластеризатор оставался одним префиксом.
func objectKey(clusterer string, at time.Time, id string) string {
	prefix := strings.ReplaceAll(clusterer, "/", "_")
	if prefix == "" {
		prefix = "unnamed"
	}
	return fmt.Sprintf("%s/%s-%s.svg", prefix, at.UTC().Format("20060102T150405Z"), id)
}
