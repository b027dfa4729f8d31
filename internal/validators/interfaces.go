// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for request payloads before
// they reach the service layer.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//
// Failures are reported as *apperr.Error values of kind InvalidInput whose
// cause is a [FieldErrors] list, so the transport layer can echo every
// offending field in the error envelope.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error

	// ValidateVar validates a single value, e.g. a path parameter, against
	// a validator tag such as "required,uuid".
	ValidateVar(ctx context.Context, field string, value any, tag string) error
}
