package pets

import "errors"

var (
	ErrAccountNotFound = errors.New("account_not_found")
	ErrUnknownEgg      = errors.New("unknown_egg_type")
	ErrUnknownAction   = errors.New("unknown_care_action")
	ErrInvalidName     = errors.New("invalid_pet_name")
	ErrEggNotFound     = errors.New("egg_not_found")
	ErrPetNotFound     = errors.New("pet_not_found")
	ErrLevelTooLow     = errors.New("level_too_low")
	ErrPetLevelTooLow  = errors.New("pet_level_too_low")
	ErrPetCapReached   = errors.New("pet_cap_reached")
)
