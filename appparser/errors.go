package appparser

import "github.com/pkg/errors"

// errTooShort is returned by Parse when payload does not even contain a
// full application control octet and function code.
var errTooShort = errors.New("appparser: payload too short for application header")
