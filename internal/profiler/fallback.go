package profiler

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// FallbackGenerator tries the primary generator and, when it fails, the fallback.
type FallbackGenerator struct {
	primary  Generator
	fallback Generator
	logger   *zap.Logger
}

// NewFallbackGenerator returns primary unchanged when fallback is nil.
func NewFallbackGenerator(primary, fallback Generator, logger *zap.Logger) Generator {
	if fallback == nil {
		return primary
	}
	return &FallbackGenerator{primary: primary, fallback: fallback, logger: logger}
}

func (f *FallbackGenerator) Name() string {
	return f.primary.Name() + "+" + f.fallback.Name()
}

func (f *FallbackGenerator) GenerateJSON(ctx context.Context, req Request) (string, error) {
	text, primaryErr := f.primary.GenerateJSON(ctx, req)
	if primaryErr == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", primaryErr
	}

	f.logger.Warn("Primary generator failed, trying fallback",
		zap.String("primary", f.primary.Name()),
		zap.String("fallback", f.fallback.Name()),
		zap.Error(primaryErr),
	)

	text, fallbackErr := f.fallback.GenerateJSON(ctx, req)
	if fallbackErr != nil {
		return "", errors.Join(primaryErr, fallbackErr)
	}
	return text, nil
}
