package config

import (
	"errors"
)

var (
	// ErrInvalidConfig wraps a loaded configuration that cannot drive an
	// analysis, such as a zero worker count or an unknown default score.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps failures reading the YAML file or READABILITY_ env.
	ErrLoadConfig = errors.New("load config failed")
)
