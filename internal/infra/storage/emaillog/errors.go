package emaillog

import "errors"

var (
	ErrBuildQuery = errors.New("emaillog.repository: failed to build query")
	ErrExecQuery  = errors.New("emaillog.repository: failed to execute query")
)
