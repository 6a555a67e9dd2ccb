// Package scheduler implements the spaced-repetition policy: the per-card
// interval-update rules, due/new/mastered classification, and review-queue
// construction. Everything here is pure and deterministic; callers supply
// the clock.
package scheduler

import (
	"math"
	"time"

	"recall/internal/domain"
)

// SM-2-family constants. Interval previews shown before a rating and the
// update applied on commit both go through ApplyRating, so these values are
// the single source of truth for both.
const (
	hardEasePenalty    = 0.20 // subtracted from ease on a hard rating
	easyEaseBonus      = 0.15 // added to ease on an easy rating
	easyIntervalBonus  = 1.3  // extra growth factor for easy
	lapseIntervalRatio = 0.5  // interval kept after a lapse

	firstGoodInterval  = 1 // days, first successful review
	secondGoodInterval = 6 // days, second successful review
	firstEasyInterval  = 4 // days, easy on a brand-new card
)

// ApplyRating returns the progress record after one review at the given
// instant. The input is not mutated. A hard rating on a card with prior
// successful repetitions counts as a lapse and resets the repetition streak.
func ApplyRating(p domain.Progress, rating domain.Rating, now time.Time) domain.Progress {
	next := p

	switch rating {
	case domain.Hard:
		next.Ease = math.Max(domain.MinEase, p.Ease-hardEasePenalty)
		if p.Reps > 0 {
			// Lapse: keep part of the interval, restart the streak.
			next.Interval = roundDays(float64(p.Interval) * lapseIntervalRatio)
			next.Lapses = p.Lapses + 1
		} else {
			next.Interval = 1
		}
		next.Reps = 0

	case domain.Good:
		switch {
		case p.Reps == 0:
			next.Interval = firstGoodInterval
		case p.Reps == 1 && p.Interval < secondGoodInterval:
			// Graduation step: the second success jumps straight to six
			// days unless the interval already grew past it.
			next.Interval = secondGoodInterval
		default:
			next.Interval = roundDays(float64(p.Interval) * p.Ease)
		}
		next.Reps = p.Reps + 1

	case domain.Easy:
		if p.Reps == 0 {
			next.Interval = firstEasyInterval
		} else {
			next.Interval = roundDays(float64(p.Interval) * p.Ease * easyIntervalBonus)
		}
		next.Ease = p.Ease + easyEaseBonus
		next.Reps = p.Reps + 1
	}

	next.Due = now.AddDate(0, 0, next.Interval)
	reviewed := now
	next.LastReviewed = &reviewed

	return next
}

// IntervalPreview holds the interval, in days, that each rating would
// produce for one card.
type IntervalPreview struct {
	Hard int
	Good int
	Easy int
}

// ForRating returns the previewed interval for the given rating.
func (p IntervalPreview) ForRating(r domain.Rating) int {
	switch r {
	case domain.Hard:
		return p.Hard
	case domain.Easy:
		return p.Easy
	default:
		return p.Good
	}
}

// PreviewIntervals computes the next interval for each possible rating
// without committing anything.
func PreviewIntervals(p domain.Progress, now time.Time) IntervalPreview {
	return IntervalPreview{
		Hard: ApplyRating(p, domain.Hard, now).Interval,
		Good: ApplyRating(p, domain.Good, now).Interval,
		Easy: ApplyRating(p, domain.Easy, now).Interval,
	}
}

// roundDays rounds to the nearest whole day, floored at 1.
func roundDays(days float64) int {
	rounded := int(math.Round(days))
	if rounded < 1 {
		return 1
	}
	return rounded
}
