package service

import "errors"

var (
	ErrNotFound         = errors.New("error not found")
	ErrNoTradingData    = errors.New("no trading data for period")
	ErrInsufficientData = errors.New("insufficient data to build index")
)
