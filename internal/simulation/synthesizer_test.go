package simulation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestBasal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Equal(t, NormalRangeMin+dawnOffset, Basal(rng, at(4, 0)))
	assert.Equal(t, NormalRangeMin+dawnOffset, Basal(rng, at(8, 59)))
	assert.Equal(t, NormalRangeMin+nightOffset, Basal(rng, at(19, 0)))
	assert.Equal(t, NormalRangeMin+nightOffset, Basal(rng, at(2, 30)))

	for i := 0; i < 100; i++ {
		v := Basal(rng, at(9+i%10, 0))
		assert.GreaterOrEqual(t, v, NormalRangeMin)
		assert.LessOrEqual(t, v, NormalRangeMax)
	}
}

func TestSynthesize_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	synth := NewSynthesizer(rng, AllToggles())
	sched := Schedule{
		Meals: []MealEvent{{Time: at(7, 0), CarbsGrams: 600, Type: MealBreakfast}},
		Exercises: []ExerciseEvent{
			{Time: at(1, 0), DurationMinutes: 60, Intensity: IntensityVigorous},
		},
	}

	for tick := day; tick.Before(day.Add(24 * time.Hour)); tick = tick.Add(time.Minute) {
		v := synth.Synthesize(tick, sched).Value
		require.GreaterOrEqual(t, v, ClampMin, "tick %s", tick)
		require.LessOrEqual(t, v, ClampMax, "tick %s", tick)
	}

	assert.Equal(t, ClampMax, synth.Synthesize(at(8, 0), sched).Value)
}

func TestSynthesize_MealSpike(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	synth := NewSynthesizer(rng, AllToggles())
	withMeal := Schedule{Meals: []MealEvent{{Time: at(7, 30), CarbsGrams: 40, Type: MealBreakfast}}}

	var spiked, baseline float64
	const runs = 200
	for i := 0; i < runs; i++ {
		spiked += synth.Synthesize(at(8, 30), withMeal).Value
		baseline += synth.Synthesize(at(8, 30), Schedule{}).Value
	}
	spiked /= runs
	baseline /= runs

	assert.Greater(t, spiked, baseline+50)
}

func TestSynthesize_ExerciseDrop(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	synth := NewSynthesizer(rng, AllToggles())
	withExercise := Schedule{Exercises: []ExerciseEvent{
		{Time: at(17, 0), DurationMinutes: 30, Intensity: IntensityVigorous},
	}}

	var dropped, baseline float64
	var n int
	for i := 0; i < 100; i++ {
		for m := 0; m <= 30; m += 5 {
			dropped += synth.Synthesize(at(17, m), withExercise).Value
			baseline += synth.Synthesize(at(17, m), Schedule{}).Value
			n++
		}
	}

	assert.Less(t, dropped/float64(n), baseline/float64(n)-10)
}

func TestSynthesize_ExerciseEffectEnds(t *testing.T) {
	ex := ExerciseEvent{Time: at(6, 0), DurationMinutes: 20, Intensity: IntensityLight}
	sched := Schedule{Exercises: []ExerciseEvent{ex}}
	synth := NewSynthesizer(rand.New(rand.NewSource(1)), AllToggles())

	assert.NotNil(t, synth.Synthesize(at(7, 20), sched).Exercise)
	assert.Nil(t, synth.Synthesize(at(7, 25), sched).Exercise)
}

func TestSynthesize_OnlyFirstMealInWindow(t *testing.T) {
	sched := Schedule{Meals: []MealEvent{
		{Time: at(12, 0), CarbsGrams: 30, Type: MealLunch},
		{Time: at(12, 30), CarbsGrams: 60, Type: MealSnack},
	}}
	synth := NewSynthesizer(rand.New(rand.NewSource(1)), AllToggles())

	sample := synth.Synthesize(at(13, 0), sched)

	require.NotNil(t, sample.Meal)
	assert.Equal(t, MealLunch, sample.Meal.Type)
	assert.Equal(t, 60.0, sample.MealMinutesAgo)
	assert.Equal(t, "lunch +60m (30g carbs)", sample.Notes())
}

func TestSynthesize_IgnoresFutureAndStaleEvents(t *testing.T) {
	sched := Schedule{
		Meals: []MealEvent{
			{Time: at(7, 0), CarbsGrams: 40, Type: MealBreakfast},
			{Time: at(12, 30), CarbsGrams: 50, Type: MealLunch},
		},
	}
	synth := NewSynthesizer(rand.New(rand.NewSource(1)), AllToggles())

	sample := synth.Synthesize(at(12, 0), sched)

	assert.Nil(t, sample.Meal)
	assert.Empty(t, sample.Notes())
}

func TestSynthesize_TogglesOff(t *testing.T) {
	sched := Schedule{
		Meals:     []MealEvent{{Time: at(2, 0), CarbsGrams: 50, Type: MealSnack}},
		Exercises: []ExerciseEvent{{Time: at(2, 0), DurationMinutes: 40, Intensity: IntensityModerate}},
	}
	synth := NewSynthesizer(rand.New(rand.NewSource(1)), Toggles{})

	sample := synth.Synthesize(at(3, 0), sched)

	assert.Nil(t, sample.Meal)
	assert.Nil(t, sample.Exercise)
	assert.InDelta(t, flatBasal(), sample.Value, noiseAmplitude)
}

func TestSynthesize_SleepInfluence(t *testing.T) {
	withSleep := NewSynthesizer(rand.New(rand.NewSource(21)), Toggles{BasalPattern: true, SleepInfluence: true})
	without := NewSynthesizer(rand.New(rand.NewSource(21)), Toggles{BasalPattern: true})

	a := withSleep.Synthesize(at(2, 0), Schedule{}).Value
	b := without.Synthesize(at(2, 0), Schedule{}).Value

	assert.InDelta(t, b-sleepDrift, a, 1e-9)
}

func TestMealSpikeShape(t *testing.T) {
	meal := &MealEvent{CarbsGrams: 45}

	peak := mealSpike(meal, 60)
	assert.InDelta(t, 90.0, peak, 1e-9)
	assert.Less(t, mealSpike(meal, 0), peak)
	assert.Less(t, mealSpike(meal, 150), peak)
}
