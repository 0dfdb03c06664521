package worker

import (
	"context"
	"errors"
	"time"

	"github.com/tradeboard/internal/config"
	"github.com/tradeboard/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultSweepInterval = time.Hour

// Service 异步队列服务
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	sweepInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, retention *config.RetentionConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	sweepInterval := defaultSweepInterval
	if retention != nil && retention.SweepIntervalMinutes > 0 {
		sweepInterval = time.Duration(retention.SweepIntervalMinutes) * time.Minute
	}
	if retention != nil && !retention.PurgeEnabled {
		sweepInterval = 0
	}

	return &Service{
		name:          "worker",
		server:        server,
		mux:           mux,
		consumer:      consumer,
		sweepInterval: sweepInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.sweepInterval > 0 {
		go s.runPurgeSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runPurgeSweepLoop 周期清扫保留期已过的软删除记录，
// 兜底队列停机期间丢失的延迟清理任务。
func (s *Service) runPurgeSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.TableService == nil {
		return
	}
	runOnce := func() {
		s.consumer.TableService.PurgeExpired()
	}
	runOnce()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
