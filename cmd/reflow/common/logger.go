/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package common

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewLogger builds the process logger: zap behind a logr front, writing to
// stderr so stdout stays reserved for results. Every invocation is tagged
// with a short run identifier.
func NewLogger(debug bool) (logr.Logger, error) {
	var (
		zl  *zap.Logger
		err error
	)
	if debug {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return logr.Logger{}, err
	}

	return zapr.NewLogger(zl).WithName("reflow").WithValues("run", uuid.NewString()[:8]), nil
}
