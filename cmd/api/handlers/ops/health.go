package handlers

import (
	"context"
	"sort"
	"sync"

	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// CheckFunc 依赖健康检查
type CheckFunc func(ctx context.Context) error

type HealthStatus struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
	CPUPercent   float64           `json:"cpu_percent"`
	MemPercent   float64           `json:"mem_percent"`
}

var (
	mu     sync.RWMutex
	checks = map[string]CheckFunc{}
)

func RegisterCheck(name string, fn CheckFunc) {
	mu.Lock()
	defer mu.Unlock()
	checks[name] = fn
}

func runChecks(ctx context.Context) (map[string]string, bool) {
	mu.RLock()
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	mu.RUnlock()
	sort.Strings(names)

	res := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		mu.RLock()
		fn := checks[name]
		mu.RUnlock()
		cctx, cancel := context.WithTimeout(ctx, constants.HealthCheckTimeout)
		err := fn(cctx)
		cancel()
		if err != nil {
			hlog.CtxWarnf(ctx, "health check %s failed: %v", name, err)
			res[name] = err.Error()
			healthy = false
			continue
		}
		res[name] = "ok"
	}
	return res, healthy
}

func Health(ctx context.Context, c *app.RequestContext) {
	deps, healthy := runChecks(ctx)
	status := &HealthStatus{Status: "ok", Dependencies: deps}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status.MemPercent = vm.UsedPercent
	}
	if !healthy {
		status.Status = "degraded"
		pack.SendResponse(c, errno.ServiceErr.WithMessage("dependency unavailable"), status)
		return
	}
	pack.SendResponse(c, errno.Success, status)
}
