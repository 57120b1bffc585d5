package logger

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"prstats/internal/domain"
)

type ctxKey struct{}

func New() *zap.Logger {
	logger, _ := zap.NewDevelopment(zap.AddStacktrace(zap.ErrorLevel))
	return logger
}

func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if lg, ok := v.(*zap.Logger); ok {
			return lg
		}
	}

	return zap.L()
}

func LogDomainAware(ctx context.Context, err error, msg string, fields ...zap.Field) {
	log := FromContext(ctx)

	var derr *domain.DomainError
	if errors.As(err, &derr) {
		log.Warn(msg,
			append(fields,
				zap.String("code", string(derr.Code)),
				zap.Error(err),
			)...,
		)
		return
	}

	log.Error(msg,
		append(fields, zap.Error(err))...,
	)
}
