/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced entity or association target does
// not exist. It is an expected, recoverable condition for callers.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// InvalidQueryError reports a filter or sort referencing an unrecognized
// column. It must be caught at the boundary, never surfaced as a storage error.
type InvalidQueryError struct {
	Column string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query column %q", e.Column)
}

// ConflictError reports a concurrent modification where the target row still
// exists. It propagates to the caller unchanged; nothing retries it.
type ConflictError struct {
	Resource string
	ID       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting write on %s %q", e.Resource, e.ID)
}

// StorageError wraps any other failure from the storage collaborator. It is
// not locally recoverable.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsInvalidQuery reports whether err is (or wraps) an InvalidQueryError.
func IsInvalidQuery(err error) bool {
	var e *InvalidQueryError
	return errors.As(err, &e)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}
