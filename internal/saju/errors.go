package saju

import "errors"

var (
	// ErrDateOutOfRange is returned for dates the lunar table does not cover.
	ErrDateOutOfRange = errors.New("date out of supported range")

	// ErrInvalidLunarDate is returned when a lunar month, day or leap flag
	// does not exist in the given lunar year.
	ErrInvalidLunarDate = errors.New("invalid lunar date")

	// ErrInvalidGender is returned when Options.Gender is not male or female.
	ErrInvalidGender = errors.New("gender must be male or female")
)
