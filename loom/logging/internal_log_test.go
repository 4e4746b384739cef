// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2022, time.March, 5, 13, 45, 4, 123*int(time.Millisecond), time.UTC),
		Level:   logrus.WarnLevel,
		Message: "carrier crashed",
	}

	line, err := (&InternalFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "05 Mar 2022 13:45:04.123 [warning] carrier crashed\n", string(line))
}

func TestInternalFormatterFields(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2022, time.March, 5, 13, 45, 4, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "executor started",
		Data:    logrus.Fields{"parallelism": 8},
	}

	line, err := (&InternalFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "05 Mar 2022 13:45:04.000 [info] executor started parallelism=8\n", string(line))
}

func TestSetLogLevel(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	SetLogLevel("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.True(t, logrus.IsLevelEnabled(logrus.DebugLevel))

	SetLogLevel("error")
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
	assert.False(t, logrus.IsLevelEnabled(logrus.InfoLevel))
}
