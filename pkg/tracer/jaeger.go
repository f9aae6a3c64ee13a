package tracer

import (
	"fmt"
	"io"

	"TikLite.com/config"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// InitJaeger 设置全局tracer，未配置agent时返回nil
func InitJaeger(service string) (io.Closer, error) {
	c := config.ConfigInfo.Jaeger
	if c.AgentAddr == "" {
		logrus.Info("jaeger agent not configured, tracing disabled")
		return nil, nil
	}
	param := c.SamplerParam
	if param <= 0 {
		param = 0.1
	}
	cfg := jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeProbabilistic,
			Param: param,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: c.AgentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaeger.StdLogger))
	if err != nil {
		return nil, fmt.Errorf("failed to init jaeger tracer: %w", err)
	}
	opentracing.SetGlobalTracer(tracer)
	logrus.Infof("jaeger tracing enabled, agent=%s", c.AgentAddr)
	return closer, nil
}
