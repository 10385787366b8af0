package simulation

import (
	"math/rand"
	"time"

	"github.com/vladimiradmaev/cgm-simulator/internal/utils"
)

// MealType names a meal slot in the daily schedule.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnack     MealType = "snack"
	MealDinner    MealType = "dinner"
)

// Intensity is the exertion level of an exercise session.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityVigorous Intensity = "vigorous"
)

var intensities = []Intensity{IntensityLight, IntensityModerate, IntensityVigorous}

// multiplier scales the exercise glucose drop.
func (i Intensity) multiplier() float64 {
	switch i {
	case IntensityVigorous:
		return 1.5
	case IntensityModerate:
		return 1.0
	default:
		return 0.5
	}
}

// MealEvent is a carbohydrate intake at a point in time.
type MealEvent struct {
	Time       time.Time
	CarbsGrams float64
	Type       MealType
}

// ExerciseEvent is a bout of physical activity.
type ExerciseEvent struct {
	Time            time.Time
	DurationMinutes float64
	Intensity       Intensity
}

// Schedule holds the events of a run, each slice ordered by time.
type Schedule struct {
	Meals     []MealEvent
	Exercises []ExerciseEvent
}

// band is a time-of-day window and a value range to draw from.
type band struct {
	startMinute int
	spanMinutes int
	minValue    float64
	maxValue    float64
}

var mealBands = map[MealType]band{
	MealBreakfast: {startMinute: utils.TimeToMinutes("07:00"), spanMinutes: 120, minValue: 30, maxValue: 50},
	MealLunch:     {startMinute: utils.TimeToMinutes("12:00"), spanMinutes: 120, minValue: 40, maxValue: 70},
	MealSnack:     {startMinute: utils.TimeToMinutes("15:00"), spanMinutes: 60, minValue: 10, maxValue: 25},
	MealDinner:    {startMinute: utils.TimeToMinutes("18:00"), spanMinutes: 120, minValue: 35, maxValue: 60},
}

var (
	morningExerciseFrom = utils.TimeToMinutes("06:00")
	eveningExerciseFrom = utils.TimeToMinutes("17:00")
)

const (
	snackProbability    = 0.5
	exerciseProbability = 0.7
	exerciseMinDuration = 20.0
	exerciseMaxDuration = 60.0
	exerciseBandSpan    = 120
)

// GenerateSchedule builds meal and exercise events for every calendar day in
// [start, end], inclusive, in the location of start.
func GenerateSchedule(rng *rand.Rand, start, end time.Time) Schedule {
	var sched Schedule

	lastDay := utils.StartOfDay(end.In(start.Location()))
	for day := utils.StartOfDay(start); !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		sched.Meals = append(sched.Meals, generateMeals(rng, day)...)
		if ex, ok := generateExercise(rng, day); ok {
			sched.Exercises = append(sched.Exercises, ex)
		}
	}

	return sched
}

func generateMeals(rng *rand.Rand, day time.Time) []MealEvent {
	meals := make([]MealEvent, 0, 4)
	meals = append(meals, drawMeal(rng, day, MealBreakfast), drawMeal(rng, day, MealLunch))
	if rng.Float64() < snackProbability {
		meals = append(meals, drawMeal(rng, day, MealSnack))
	}
	return append(meals, drawMeal(rng, day, MealDinner))
}

func drawMeal(rng *rand.Rand, day time.Time, mealType MealType) MealEvent {
	b := mealBands[mealType]
	return MealEvent{
		Time:       utils.AtMinute(day, b.startMinute+rng.Intn(b.spanMinutes)),
		CarbsGrams: uniform(rng, b.minValue, b.maxValue),
		Type:       mealType,
	}
}

func generateExercise(rng *rand.Rand, day time.Time) (ExerciseEvent, bool) {
	if rng.Float64() >= exerciseProbability {
		return ExerciseEvent{}, false
	}

	from := eveningExerciseFrom
	if rng.Float64() < 0.5 {
		from = morningExerciseFrom
	}

	return ExerciseEvent{
		Time:            utils.AtMinute(day, from+rng.Intn(exerciseBandSpan)),
		Intensity:       intensities[rng.Intn(len(intensities))],
		DurationMinutes: uniform(rng, exerciseMinDuration, exerciseMaxDuration),
	}, true
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
