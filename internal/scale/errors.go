/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scale

import (
	"errors"
	"fmt"
)

// ErrorKind classifies scale errors so callers can distinguish bad
// configuration from operations a kind simply does not offer.
type ErrorKind int

const (
	// ErrConfig marks an invalid option value or a domain/range that does
	// not fit the scale kind.
	ErrConfig ErrorKind = iota
	// ErrShape marks a domain/range length mismatch.
	ErrShape
	// ErrUnsupported marks an operation the scale kind does not support.
	ErrUnsupported
	// ErrLookup marks an unknown scale kind name.
	ErrLookup
)

// Error is the error type returned by every operation in this package.
type Error struct {
	Kind ErrorKind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// KindOfError extracts the ErrorKind when err originates from this package.
func KindOfError(err error) (ErrorKind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

func configErrf(format string, args ...any) *Error {
	return &Error{Kind: ErrConfig, msg: fmt.Sprintf(format, args...)}
}

func shapeErrf(format string, args ...any) *Error {
	return &Error{Kind: ErrShape, msg: fmt.Sprintf(format, args...)}
}

func lookupErrf(format string, args ...any) *Error {
	return &Error{Kind: ErrLookup, msg: fmt.Sprintf(format, args...)}
}

func unsupportedErr(k Kind, op string) *Error {
	return &Error{Kind: ErrUnsupported, msg: fmt.Sprintf("%s scale does not support %s", k, op)}
}
