package service

import "errors"

var (
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrUserNotFound          = errors.New("user not found")
	ErrInterviewNotFound     = errors.New("interview not found")
	ErrInterviewComplete     = errors.New("interview already complete")
	ErrUnsupportedResume     = errors.New("unsupported resume format")
	ErrResumeTooLarge        = errors.New("resume exceeds upload limit")
	ErrUnreadableResume      = errors.New("resume could not be read")
	ErrModelUnavailable      = errors.New("AI service is unavailable")
	ErrUnparseableEvaluation = errors.New("could not parse evaluation from AI response")
	ErrMissingJWTSecret      = errors.New("JWT_SECRET_KEY must be set")
)
