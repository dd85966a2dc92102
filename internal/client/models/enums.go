package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownCode is returned when a profile enum receives a code outside its set.
var ErrUnknownCode = errors.New("unknown enum code")

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

var genderLabels = map[Gender]string{
	GenderMale:   "Мужской",
	GenderFemale: "Женский",
}

type Goal string

const (
	GoalLoseWeight Goal = "LOSE_WEIGHT"
	GoalGainMuscle Goal = "GAIN_MUSCLE"
	GoalGetEnergy  Goal = "GET_ENERGY"
)

var goalLabels = map[Goal]string{
	GoalLoseWeight: "Похудеть",
	GoalGainMuscle: "Набрать мышечную массу",
	GoalGetEnergy:  "Зарядиться энергией",
}

type Diet string

const (
	DietNone       Diet = "NO_DIET"
	DietVegan      Diet = "VEGAN"
	DietVegetarian Diet = "VEGETARIAN"
)

var dietLabels = map[Diet]string{
	DietNone:       "Без диеты",
	DietVegan:      "Веганская",
	DietVegetarian: "Вегетарианская",
}

type Experience string

const (
	ExperienceNone          Experience = "NO_EXPERIENCE"
	ExperienceLessThanYear  Experience = "LESS_THAN_YEAR"
	ExperienceOneToThree    Experience = "ONE_TO_THREE"
	ExperienceMoreThanThree Experience = "MORE_THAN_THREE"
)

var experienceLabels = map[Experience]string{
	ExperienceNone:          "Нету",
	ExperienceLessThanYear:  "Меньше года",
	ExperienceOneToThree:    "1-3 года",
	ExperienceMoreThanThree: "Более 3 лет",
}

type WorkoutFrequency string

const (
	WorkoutFrequencyOneToTwo    WorkoutFrequency = "ONE_TO_TWO"
	WorkoutFrequencyThreeToFour WorkoutFrequency = "THREE_TO_FOUR"
	WorkoutFrequencyFourToFive  WorkoutFrequency = "FOUR_TO_FIVE"
	WorkoutFrequencySixToSeven  WorkoutFrequency = "SIX_TO_SEVEN"
)

var workoutFrequencyLabels = map[WorkoutFrequency]string{
	WorkoutFrequencyOneToTwo:    "1-2 раза в неделю",
	WorkoutFrequencyThreeToFour: "3-4 раза в неделю",
	WorkoutFrequencyFourToFive:  "4-5 раз в неделю",
	WorkoutFrequencySixToSeven:  "6-7 раз в неделю",
}

func (v Gender) Valid() bool           { _, ok := genderLabels[v]; return ok }
func (v Goal) Valid() bool             { _, ok := goalLabels[v]; return ok }
func (v Diet) Valid() bool             { _, ok := dietLabels[v]; return ok }
func (v Experience) Valid() bool       { _, ok := experienceLabels[v]; return ok }
func (v WorkoutFrequency) Valid() bool { _, ok := workoutFrequencyLabels[v]; return ok }

// Label returns the localized display name, or the raw code if unknown.
func (v Gender) Label() string           { return label(genderLabels, v) }
func (v Goal) Label() string             { return label(goalLabels, v) }
func (v Diet) Label() string             { return label(dietLabels, v) }
func (v Experience) Label() string       { return label(experienceLabels, v) }
func (v WorkoutFrequency) Label() string { return label(workoutFrequencyLabels, v) }

func (v *Gender) UnmarshalJSON(b []byte) error           { return decodeCode(b, v, genderLabels) }
func (v *Goal) UnmarshalJSON(b []byte) error             { return decodeCode(b, v, goalLabels) }
func (v *Diet) UnmarshalJSON(b []byte) error             { return decodeCode(b, v, dietLabels) }
func (v *Experience) UnmarshalJSON(b []byte) error       { return decodeCode(b, v, experienceLabels) }
func (v *WorkoutFrequency) UnmarshalJSON(b []byte) error { return decodeCode(b, v, workoutFrequencyLabels) }

// Genders and friends list every code in display order.
func Genders() []Gender { return []Gender{GenderMale, GenderFemale} }

func Goals() []Goal { return []Goal{GoalLoseWeight, GoalGainMuscle, GoalGetEnergy} }

func Diets() []Diet { return []Diet{DietNone, DietVegan, DietVegetarian} }

func Experiences() []Experience {
	return []Experience{ExperienceNone, ExperienceLessThanYear, ExperienceOneToThree, ExperienceMoreThanThree}
}

func WorkoutFrequencies() []WorkoutFrequency {
	return []WorkoutFrequency{
		WorkoutFrequencyOneToTwo,
		WorkoutFrequencyThreeToFour,
		WorkoutFrequencyFourToFive,
		WorkoutFrequencySixToSeven,
	}
}

func label[T ~string](labels map[T]string, v T) string {
	if l, ok := labels[v]; ok {
		return l
	}
	return string(v)
}

func decodeCode[T ~string](b []byte, dst *T, labels map[T]string) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	code := T(s)
	if _, ok := labels[code]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCode, s)
	}
	*dst = code
	return nil
}
