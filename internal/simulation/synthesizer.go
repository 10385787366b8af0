package simulation

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Curve shape parameters.
const (
	mealWindow          = 180 * time.Minute
	mealPeakMinutes     = 60.0
	mealRisePer15gCarbs = 30.0

	exerciseWindow       = 120 * time.Minute
	exerciseTailMinutes  = 60.0
	exerciseDropBase     = 20.0
	exerciseDecayMinutes = 90.0

	sleepDrift     = 3.0
	sleepHourEnd   = 6
	noiseAmplitude = 5.0
)

// Sample is the synthesized value of one tick along with the events that
// shaped it.
type Sample struct {
	Value              float64
	Meal               *MealEvent
	MealMinutesAgo     float64
	Exercise           *ExerciseEvent
	ExerciseMinutesAgo float64
}

// Notes describes the events that influenced the sample, or "" when none did.
func (s Sample) Notes() string {
	var parts []string
	if s.Meal != nil {
		parts = append(parts, fmt.Sprintf("%s +%.0fm (%.0fg carbs)", s.Meal.Type, s.MealMinutesAgo, s.Meal.CarbsGrams))
	}
	if s.Exercise != nil {
		parts = append(parts, fmt.Sprintf("%s exercise +%.0fm", s.Exercise.Intensity, s.ExerciseMinutesAgo))
	}
	return strings.Join(parts, "; ")
}

// Synthesizer turns a tick and an event schedule into a glucose value.
// It is not safe for concurrent use; the random source is owned by the run.
type Synthesizer struct {
	rng     *rand.Rand
	toggles Toggles
}

// NewSynthesizer creates a synthesizer drawing from rng.
func NewSynthesizer(rng *rand.Rand, toggles Toggles) *Synthesizer {
	return &Synthesizer{rng: rng, toggles: toggles}
}

// Synthesize computes the value at tick. Only the chronologically first meal
// inside the meal window and the first exercise inside the exercise window
// contribute; overlapping events are not summed. The result is always within
// [ClampMin, ClampMax].
func (s *Synthesizer) Synthesize(tick time.Time, sched Schedule) Sample {
	var sample Sample

	value := flatBasal()
	if s.toggles.BasalPattern {
		value = Basal(s.rng, tick)
	}

	if s.toggles.MealSpikes {
		if meal, ago, ok := findMeal(sched.Meals, tick); ok {
			value += mealSpike(meal, ago)
			sample.Meal, sample.MealMinutesAgo = meal, ago
		}
	}

	if s.toggles.ExerciseDrops {
		if ex, ago, ok := findExercise(sched.Exercises, tick); ok && ago <= ex.DurationMinutes+exerciseTailMinutes {
			value -= exerciseDrop(ex, ago)
			sample.Exercise, sample.ExerciseMinutesAgo = ex, ago
		}
	}

	if s.toggles.SleepInfluence && tick.Hour() < sleepHourEnd {
		value -= sleepDrift
	}

	value += (s.rng.Float64()*2 - 1) * noiseAmplitude
	sample.Value = clamp(value)

	return sample
}

// mealSpike is a Gaussian bump peaking mealPeakMinutes after the meal.
func mealSpike(meal *MealEvent, minutesAgo float64) float64 {
	x := minutesAgo/mealPeakMinutes - 1
	return math.Exp(-(x*x)/0.5) * (meal.CarbsGrams / 15 * mealRisePer15gCarbs)
}

func exerciseDrop(ex *ExerciseEvent, minutesAgo float64) float64 {
	return exerciseDropBase * ex.Intensity.multiplier() * math.Exp(-minutesAgo/exerciseDecayMinutes)
}

func findMeal(meals []MealEvent, tick time.Time) (*MealEvent, float64, bool) {
	for i := range meals {
		if ago := tick.Sub(meals[i].Time); ago >= 0 && ago <= mealWindow {
			return &meals[i], ago.Minutes(), true
		}
	}
	return nil, 0, false
}

func findExercise(exercises []ExerciseEvent, tick time.Time) (*ExerciseEvent, float64, bool) {
	for i := range exercises {
		if ago := tick.Sub(exercises[i].Time); ago >= 0 && ago <= exerciseWindow {
			return &exercises[i], ago.Minutes(), true
		}
	}
	return nil, 0, false
}

func clamp(v float64) float64 {
	return math.Max(ClampMin, math.Min(ClampMax, v))
}
