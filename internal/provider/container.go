package provider

import (
	"time"

	"github.com/tradeboard/internal/cache"
	"github.com/tradeboard/internal/config"
	"github.com/tradeboard/internal/logger"
	"github.com/tradeboard/internal/models"
	"github.com/tradeboard/internal/queue"
	"github.com/tradeboard/internal/repository"
	"github.com/tradeboard/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	TableRegistry *repository.TableRegistry
	TableRepo     repository.TableRepository

	TableService *service.TableService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.TableRegistry = repository.DefaultRegistry()
	c.TableRepo = repository.NewTableRepository(models.DB)

	retention := time.Duration(0)
	if cfg.Retention.PurgeEnabled && cfg.Retention.PurgeAfterDays > 0 {
		retention = time.Duration(cfg.Retention.PurgeAfterDays) * 24 * time.Hour
	}
	c.TableService = service.NewTableService(c.TableRegistry, c.TableRepo, c.QueueClient, retention)

	return c
}
