package middleware

import (
	"context"
	"time"

	"github.com/fekuna/ammodeals-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestIDHeader is used both as HTTP header and gRPC metadata key.
const RequestIDHeader = "x-request-id"

// RequestIDFromContext returns the id set by ContextInterceptor, or "".
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextInterceptor propagates (or mints) a request id and logs every unary call.
func ContextInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		reqID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get(RequestIDHeader); len(vals) > 0 {
				reqID = vals[0]
			}
		}
		if reqID == "" {
			reqID = uuid.New().String()
		}
		ctx = context.WithValue(ctx, requestIDKey, reqID)

		start := time.Now()
		resp, err := handler(ctx, req)

		log.Debug("grpc call",
			zap.String("method", info.FullMethod),
			zap.String("request_id", reqID),
			zap.String("code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)),
		)
		return resp, err
	}
}
