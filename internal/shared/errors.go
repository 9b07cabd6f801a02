package shared

import "errors"

var (
	ErrProcessNotFound  = errors.New("process not found")
	ErrPortNotInUse     = errors.New("port not in use")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnsupported      = errors.New("unsupported on this platform")
	ErrNoSources        = errors.New("no socket table could be read")
)
