package domain

import "errors"

var (
	// ErrUpstreamCall is returned when the Gemini GenerateContent call fails
	ErrUpstreamCall = errors.New("Gemini API call failed")

	// ErrEmptyResponse is returned when Gemini replies without any text
	ErrEmptyResponse = errors.New("Empty response from Gemini API")

	// ErrNoJSONFound is returned when no {...} span exists in the reply text
	ErrNoJSONFound = errors.New("No valid JSON found in response")

	// ErrClientFormat is returned when the extracted span is not a valid JSON object
	ErrClientFormat = errors.New("Failed to parse JSON from Gemini response")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)
