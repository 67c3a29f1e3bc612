package host

import apperrors "github.com/odvcencio/selectsync/pkg/errors"

// ErrClosed is returned by Attach and Close on a closed registry.
var ErrClosed = apperrors.New(apperrors.ErrCodeInvalidInput, "registry is closed")
