package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vhtoolkit/overworld/internal/route"
)

var (
	// ErrWinnowRejected is wrapped by every rejection caused by an active
	// winnow filter.
	ErrWinnowRejected = errors.New("generator: rejected by winnow")

	ErrBaseMapRejected = fmt.Errorf("%w: wrong base map", ErrWinnowRejected)
	ErrRouteRejected   = fmt.Errorf("%w: route too long", ErrWinnowRejected)
)

// Winnow selects which filters a generation applies.
type Winnow struct {
	// BaseMap rejects seeds that do not start from the preferred base map,
	// before any terrain is generated.
	BaseMap bool
	// PerfectEnding rejects maps whose last leg is longer than MaxLastLeg.
	PerfectEnding bool
	// ShortPath rejects maps whose total route reaches MaxTotal.
	ShortPath bool
}

// Any reports whether any filter is active.
func (w Winnow) Any() bool {
	return w.BaseMap || w.PerfectEnding || w.ShortPath
}

func (w Winnow) String() string {
	var on []string
	if w.BaseMap {
		on = append(on, "basemap")
	}
	if w.PerfectEnding {
		on = append(on, "ending")
	}
	if w.ShortPath {
		on = append(on, "short")
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ",")
}

// Thresholds are the limits the winnow filters test against.
type Thresholds struct {
	BaseMapID  int
	MaxLastLeg int
	MaxTotal   int
}

// DefaultThresholds returns the stock search limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BaseMapID:  4,
		MaxLastLeg: 9,
		MaxTotal:   50,
	}
}

// RoutePolicy decides what a route rejection does to a generation.
type RoutePolicy int

const (
	// RejectRoute fails the generation with ErrRouteRejected.
	RejectRoute RoutePolicy = iota
	// RetryRoute treats a rejected route like a failed placement and
	// starts another attempt.
	RetryRoute
)

func (p RoutePolicy) String() string {
	if p == RetryRoute {
		return "retry"
	}
	return "reject"
}

// ParseRoutePolicy reads "reject" or "retry". Anything else is RejectRoute.
func ParseRoutePolicy(s string) RoutePolicy {
	if strings.EqualFold(s, "retry") {
		return RetryRoute
	}
	return RejectRoute
}

// check applies the route filters of w to s.
func (t Thresholds) check(w Winnow, s route.Score) error {
	if w.PerfectEnding && s.LastLeg > t.MaxLastLeg {
		return fmt.Errorf("%w: last leg %d > %d", ErrRouteRejected, s.LastLeg, t.MaxLastLeg)
	}
	if w.ShortPath && s.Total() >= t.MaxTotal {
		return fmt.Errorf("%w: total %d >= %d", ErrRouteRejected, s.Total(), t.MaxTotal)
	}
	return nil
}
