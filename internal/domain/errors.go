package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("invalid input")
	ErrUpstream            = errors.New("upstream failure")
	ErrTransient           = errors.New("transient backend failure")
	ErrPermanent           = errors.New("permanent backend failure")
	ErrCreditExhausted     = errors.New("credit exhausted")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrAlreadySaved        = errors.New("already saved")
)
