package service

import "errors"

var (
	// ErrInvalidInput agrupa errores de validacion de entrada del llamador (400).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserNotFound indica que el usuario no existe en users (404).
	ErrUserNotFound = errors.New("user not found")
	// ErrNotFound indica que el documento pedido no existe (404).
	ErrNotFound = errors.New("not found")
	// ErrSkillAnalysisUnavailable envuelve el fallo del oraculo en el analisis de brecha (500).
	ErrSkillAnalysisUnavailable = errors.New("skill analysis unavailable")
)
