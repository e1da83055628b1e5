package app

import (
	"errors"

	"github.com/affiliate-next/internal/config"
	"github.com/affiliate-next/internal/provider"
	"github.com/affiliate-next/internal/router"
	"github.com/affiliate-next/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := validateMode(cfg, mode); err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)
	return buildServices(cfg, container, mode)
}

// validateMode 校验启动模式；worker 模式依赖队列
func validateMode(cfg *config.Config, mode string) error {
	switch mode {
	case ModeAll, ModeAPI:
		return nil
	case ModeWorker:
		if !cfg.Queue.Enabled {
			return errors.New("worker mode requires queue.enabled=true")
		}
		return nil
	default:
		return errors.New("unknown mode: " + mode)
	}
}

func buildServices(cfg *config.Config, container *provider.Container, mode string) (*Runner, error) {
	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	// 初始化 Worker 服务；队列关闭时审计事件直接落库，无需消费者
	if (mode == ModeAll || mode == ModeWorker) && cfg.Queue.Enabled {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start",
		"addr", addr,
		"mode", opts.Mode,
		"queue_enabled", opts.Config.Queue.Enabled,
		"redis_enabled", opts.Config.Redis.Enabled,
	)
	return RunWithOptions(runner, opts)
}
