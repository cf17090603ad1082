package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CompositeSource implements Source with fallback strategy
// Primary: usually a URLSource
// Fallback: usually a FileSource bundled with the binary
type CompositeSource struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary, fallback Source, logger *zap.Logger) *CompositeSource {
	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (cs *CompositeSource) Name() string {
	return cs.primary.Name() + " (fallback " + cs.fallback.Name() + ")"
}

// Load tries the primary source first
func (cs *CompositeSource) Load(ctx context.Context) (*HolidaySet, error) {
	set, err := cs.primary.Load(ctx)
	if err == nil {
		return set, nil
	}

	cs.logger.Warn("Primary holiday source failed, falling back",
		zap.String("primary", cs.primary.Name()),
		zap.String("fallback", cs.fallback.Name()),
		zap.Error(err))

	set, fallbackErr := cs.fallback.Load(ctx)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
	}
	return set, nil
}

// NewSource picks a Source for a location: http(s) URLs are fetched, anything
// else is read as a file. A non-empty fallback wraps both in a CompositeSource.
func NewSource(location, fallbackFile string, timeout time.Duration, logger *zap.Logger) Source {
	var primary Source
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		primary = NewURLSource(location, timeout, logger)
	} else {
		primary = NewFileSource(location, logger)
	}

	if fallbackFile == "" || fallbackFile == location {
		return primary
	}
	return NewCompositeSource(primary, NewFileSource(fallbackFile, logger), logger)
}
