package log

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	slogctx "github.com/veqryn/slog-context"

	adkcontext "github.com/adk-labs/platform/utils/context"
)

// Setup installs a slog-context aware JSON handler as the default
// logger so every log line carries the attrs injected into the context.
func Setup(level slog.Level) {
	handler := slogctx.NewHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
		nil,
	)
	slog.SetDefault(slog.New(handler))
}

func InjectRequest(ctx context.Context, r *http.Request) context.Context {
	requestID, _ := adkcontext.GetRequestID(ctx)
	tenant, _ := adkcontext.ExtractTenantIDOptional(ctx)

	return slogctx.With(ctx,
		slog.String("requestId", requestID),
		slog.String("tenantId", tenant),
		slog.Group("requestData",
			slog.String("method", r.Method),
			slog.String("host", r.Host),
			slog.String("path", r.URL.Path),
		),
	)
}

func InjectTenant(ctx context.Context, tenantID string) context.Context {
	return slogctx.With(ctx, slog.String("tenantId", tenantID))
}

func ErrorAttr(err error) slog.Attr {
	return slog.Attr{
		Key:   slogctx.ErrKey,
		Value: slog.StringValue(err.Error()),
	}
}

func Debug(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelDebug, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelWarn, msg, args...)
}

func Info(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelInfo, msg, args...)
}

func Error(ctx context.Context, msg string, err error, args ...slog.Attr) {
	args = append(args, slogctx.Err(err))

	slogctx.LogAttrs(ctx, slog.LevelError, msg, args...)
}
