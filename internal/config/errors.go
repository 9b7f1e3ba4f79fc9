package config

import (
	"errors"
)

var (
	// ErrUnknownDBEngine error if config db.engine is not a supported driver.
	ErrUnknownDBEngine = errors.New("toml config db.engine must be sqlite, mysql or postgres")

	// ErrPDNSURLEmpty error if the pdns update mode is selected without an API URL.
	ErrPDNSURLEmpty = errors.New("toml config pdns.url can not be empty in pdns mode")

	// ErrUpdateServerEmpty error if the rfc2136 update mode is selected without a server.
	ErrUpdateServerEmpty = errors.New("toml config updates.server can not be empty in rfc2136 mode")
)
