package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hsm-textlab/workbench/internal/cfg"
	"github.com/hsm-textlab/workbench/internal/repository/redis/converter"
	"github.com/hsm-textlab/workbench/internal/usecase"
	"github.com/hsm-textlab/workbench/pkg/clients"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// PlotCacheRepo хранит последний график каждого кластеризатора в Redis с TTL.
type PlotCacheRepo struct {
	client *clients.RedisClient
	conv   converter.PlotSessionConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewPlotCacheRepo(client *clients.RedisClient, conv converter.PlotSessionConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *PlotCacheRepo {
	return &PlotCacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// SavePlot перезаписывает снимок графика и продлевает TTL.
func (p *PlotCacheRepo) SavePlot(ctx context.Context, session *usecase.PlotSession) error {
	data, err := p.marshalPlotForCache(p.conv.ToRedisModel(session))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := p.client.Client.Set(ctx, p.plotKey(session.Clusterer), data, p.cfg.PlotTTL).Err(); err != nil {
		p.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetPlot возвращает снимок графика или e.ErrPlotNotCached.
// Поврежденная запись удаляется и считается промахом.
func (p *PlotCacheRepo) GetPlot(ctx context.Context, clusterer string) (*usecase.PlotSession, error) {
	key := p.plotKey(clusterer)

	data, err := p.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrPlotNotCached
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := p.unmarshalPlotFromCache(data)
	if err == nil && model.Clusterer != clusterer {
		err = fmt.Errorf("cache clusterer mismatch: key: %s, model: %s", clusterer, model.Clusterer)
	}
	if err != nil {
		p.logger.Warnf("Redis cached plot rejected: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := p.client.Client.Del(ctx, key).Err(); err != nil {
			p.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, e.ErrPlotNotCached
	}

	return p.conv.ToUseCase(model), nil
}

// DeletePlot удаляет снимок графика.
func (p *PlotCacheRepo) DeletePlot(ctx context.Context, clusterer string) error {
	if err := p.client.Client.Del(ctx, p.plotKey(clusterer)).Err(); err != nil {
		p.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// marshalPlotForCache сериализует снимок графика в JSON для кэша
func (p *PlotCacheRepo) marshalPlotForCache(model *converter.PlotSessionRedisModel) ([]byte, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// unmarshalPlotFromCache десериализует JSON из кэша в модель снимка
func (p *PlotCacheRepo) unmarshalPlotFromCache(data []byte) (*converter.PlotSessionRedisModel, error) {
	var model converter.PlotSessionRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}

// plotKey возвращает Redis-ключ графика кластеризатора
func (p *PlotCacheRepo) plotKey(clusterer string) string {
	return fmt.Sprintf("plot:%s", clusterer)
}
