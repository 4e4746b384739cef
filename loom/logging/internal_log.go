// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/sirupsen/logrus"
)

// SetOutput configures logging output for standard loggers.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	logrus.SetOutput(w)
}

// SetLogLevel sets the log level for internal logging. Needs to be called very
// early during startup to configure logs emitted during executor creation.
func SetLogLevel(logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set log level. Valid log levels are:", logrus.AllLevels)
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&InternalFormatter{})
}

// InternalFormatter renders internal log lines as
// "02 Jan 2006 15:04:05.000 [LEVEL] message field=value".
type InternalFormatter struct{}

// Format renders a single log entry.
func (f *InternalFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(entry.Time.Format("02 Jan 2006 15:04:05.000"))

	fmt.Fprintf(b, " [%s]", entry.Level.String())

	b.WriteString(" " + entry.Message)

	for field, value := range entry.Data {
		fmt.Fprintf(b, " %s=%v", field, value)
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
