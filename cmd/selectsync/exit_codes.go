package main

import (
	"errors"

	apperrors "github.com/odvcencio/selectsync/pkg/errors"
)

const (
	exitUsage  = 2
	exitConfig = 3
	exitSource = 4
)

type exitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error {
	return e.err
}

func (e exitError) ExitCode() int {
	if e.code == 0 {
		return 1
	}
	return e.code
}

func withExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return exitError{code: code, err: err}
}

// exitCodeForError prefers an explicit exit code, then maps structured
// error codes: configuration problems exit 3, option source problems 4.
func exitCodeForError(err error) int {
	if err == nil {
		return 0
	}
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeConfigLoad, apperrors.ErrCodeConfigParse, apperrors.ErrCodeConfigInvalid:
		return exitConfig
	case apperrors.ErrCodeSourceRead, apperrors.ErrCodeSourceParse, apperrors.ErrCodeSourceFormat:
		return exitSource
	}
	return 1
}
