package mbox

import "errors"

var (
	// ErrCmdTooLong indicates a command exceeding the fixed command
	// buffer. The command is not sent, not truncated.
	ErrCmdTooLong = errors.New("command exceeds fixed buffer")
	// ErrAclTooLong indicates link-layer data exceeding the fixed ACL
	// buffer. The data is not sent, not truncated.
	ErrAclTooLong = errors.New("acl data exceeds fixed buffer")
)
