// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

// ErrInvalidFormat is returned when a sample rate or channel count is not positive.
var ErrInvalidFormat = errors.New("sample rate and channels must be positive")
