// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"io"

	efi "github.com/canonical/go-efilib"
	log "github.com/sirupsen/logrus"
	"github.com/twpayne/go-vfs"
)

// Logger is the logging interface used by all commands.
type Logger interface {
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})
	Error(...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	Errorf(string, ...interface{})
	Printf(string, ...interface{})
	SetLevel(level log.Level)
	GetLevel() log.Level
	SetOutput(writer io.Writer)
	WriterLevel(level log.Level) *io.PipeWriter
}

// NewLogger returns a logger writing to stderr.
func NewLogger() Logger {
	return log.New()
}

// NewNullLogger returns a logger that discards all logs, used mainly for
// testing.
func NewNullLogger() Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

// NewBufferLogger returns a logger that stores all logs in a buffer, used
// mainly for testing.
func NewBufferLogger(b *bytes.Buffer) Logger {
	logger := log.New()
	logger.SetOutput(b)
	return logger
}

// Config holds the host resources used by commands.
type Config struct {
	// Fs is the filesystem holding ACPI tables and patch files
	Fs vfs.FS
	// Logger is the command logger
	Logger Logger
	// VarContext carries the EFI variables backend
	VarContext context.Context
}

// NewConfig returns a configuration for the running host.
func NewConfig() *Config {
	return &Config{
		Fs:         vfs.OSFS,
		Logger:     NewLogger(),
		VarContext: efi.DefaultVarContext,
	}
}

var config = NewConfig()
