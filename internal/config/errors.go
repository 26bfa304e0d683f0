package config

import "errors"

var (
	ErrEnvFile       = errors.New("environment file error")
	ErrInvalidConfig = errors.New("invalid configuration")
)
