package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// Tracing 每个请求一个span，经ctx传到gorm的opentracing插件
func Tracing() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		method := string(c.Method())
		span := opentracing.GlobalTracer().StartSpan(method + " " + c.FullPath())
		ext.SpanKindRPCServer.Set(span)
		ext.HTTPMethod.Set(span, method)
		ext.HTTPUrl.Set(span, string(c.Path()))
		ctx = opentracing.ContextWithSpan(ctx, span)

		c.Next(ctx)

		status := c.Response.StatusCode()
		ext.HTTPStatusCode.Set(span, uint16(status))
		if status >= 500 {
			ext.Error.Set(span, true)
		}
		span.Finish()
	}
}
