package minio

import (
	"bytes"
	"context"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// PlotRepo хранит отрисованные графики в MinIO.
type PlotRepo struct {
	mc *minio.Client
}

func NewPlotRepo(mc *minio.Client) *PlotRepo {
	return &PlotRepo{mc: mc}
}

// Upload загружает график в бакет объекта и возвращает ключ.
func (p *PlotRepo) Upload(ctx context.Context, object *domain.PlotObject) (string, error) {
	info, err := p.mc.PutObject(ctx, object.Bucket, object.ObjectKey, bytes.NewReader(object.Data), object.Size(), minio.PutObjectOptions{
		ContentType: object.ContentType,
		UserMetadata: map[string]string{
			"plot-id": object.ID,
		},
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из бакета.
func (p *PlotRepo) Delete(ctx context.Context, bucket, key string) error {
	if err := p.mc.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
