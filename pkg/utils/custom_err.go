package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrUsernameTaken          = errors.New("username already exists")
	ErrEmailTaken             = errors.New("email already exists")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrPlanNotFound           = errors.New("travel plan not found or access denied")
	ErrExpenseNotFound        = errors.New("expense not found or access denied")
	ErrDatabaseError          = errors.New("database error")
	ErrUnexpectedBehaviorOfAI = errors.New("AI service error")
)
