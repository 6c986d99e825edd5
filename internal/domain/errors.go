package domain

import "errors"

// ErrDuplicate is returned by repositories when a write violates a
// uniqueness rule, such as a second user with the same email or a second
// food with the same barcode.
var ErrDuplicate = errors.New("duplicate record")
