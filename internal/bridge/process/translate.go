// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package process

import (
	"vulnscope/shell/internal/bridge/model"
	apperrors "vulnscope/shell/internal/errors"
)

// Translate maps a finished process to the bridge result. The exit status
// alone decides: success yields stdout, failure yields an error whose text
// is exactly stderr. Neither stream is inspected.
func Translate(o model.Outcome) (string, error) {
	if o.Succeeded {
		return o.Stdout, nil
	}
	return "", apperrors.New(apperrors.BackendFailed, o.Stderr)
}
