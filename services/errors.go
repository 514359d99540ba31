package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrRegistrationNotOpen    = errors.New("tournament registration is not open")
	ErrTournamentFull         = errors.New("tournament registration is full")

	// Conflicts
	ErrPlayerEmailConflict    = errors.New("email address is already in use")
	ErrRegistrationConflict   = errors.New("player is already registered for this tournament")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrResultsAlreadyRecorded = errors.New("results are already recorded for this tournament")

	// Authentication / authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")

	// Tournament lifecycle
	ErrTournamentInvalidDateRange        = errors.New("tournament end date must be after start date")
	ErrTournamentInvalidCapacity         = errors.New("tournament max participants must be positive")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")

	// Report generation
	ErrTournamentNotCompleted     = errors.New("tournament is not completed yet")
	ErrTournamentAlreadyProcessed = errors.New("tournament report is already processed")
)
