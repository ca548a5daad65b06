package estimation

import (
	"math/rand/v2"
	"time"

	estimationerrors "medq/internal/estimation/errors"
	"medq/pkg/model"
)

const (
	MinutesPerPatient = 15
	ArriveEarly       = 30 * time.Minute
)

// SampleCurrentToken draws the token being served uniformly from [0, n).
func SampleCurrentToken(rng *rand.Rand, n int) (int, error) {
	if n < 1 {
		return 0, estimationerrors.ErrInvalidToken
	}
	return rng.IntN(n), nil
}

// EstimateWait derives the wait snapshot for token n while token current
// is being served. current is clamped into [0, n).
func EstimateWait(n, current int, now time.Time) (model.WaitEstimate, error) {
	if n < 1 {
		return model.WaitEstimate{}, estimationerrors.ErrInvalidToken
	}
	current = max(0, min(current, n-1))

	ahead := n - current
	wait := time.Duration(ahead*MinutesPerPatient) * time.Minute

	return model.WaitEstimate{
		TokenNumber:      n,
		CurrentToken:     current,
		PatientsAhead:    ahead,
		WaitMinutes:      ahead * MinutesPerPatient,
		ProgressPercent:  float64(current) / float64(n) * 100,
		SuggestedArrival: now.Add(wait - ArriveEarly),
		ComputedAt:       now,
	}, nil
}

// EstimateQueueWait is EstimateWait for a live queue pointer. Once the queue
// has reached token n nobody is ahead: the estimate reports no wait, full
// progress and the real pointer instead of clamping it below n.
func EstimateQueueWait(n, current int, now time.Time) (model.WaitEstimate, error) {
	if n < 1 {
		return model.WaitEstimate{}, estimationerrors.ErrInvalidToken
	}
	if current < n {
		return EstimateWait(n, current, now)
	}
	return model.WaitEstimate{
		TokenNumber:      n,
		CurrentToken:     current,
		ProgressPercent:  100,
		SuggestedArrival: now,
		ComputedAt:       now,
	}, nil
}
