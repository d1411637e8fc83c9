// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnsupportedOSError_HappyPath(t *testing.T) {
	req := require.New(t)

	osName := "Windows NT"
	expected := fmt.Sprintf(UnsupportedOSErrorMsg, osName)

	err := NewUnsupportedOSError(osName)
	req.NotEmpty(err)
	req.Equal(expected, err.Error())
	req.Equal(osName, err.(*UnsupportedOSError).Name())
	req.Equal(osName, err.(*UnsupportedOSError).SafeDetails()[0])
	req.True(errors.Is(err, &UnsupportedOSError{}))
}

func TestUnsupportedOSError_EmptyName(t *testing.T) {
	req := require.New(t)
	err := NewUnsupportedOSError("")
	req.Empty(err)
}

func TestUnsupportedOSError_Cause(t *testing.T) {
	req := require.New(t)
	osName := "Windows NT"

	err := NewUnsupportedOSError(osName)
	req.NotEmpty(err)
	req.Empty(err.(*UnsupportedOSError).Cause())
}

func TestUnsupportedOSError_Unwrap(t *testing.T) {
	req := require.New(t)
	osName := "Windows NT"

	err := NewUnsupportedOSError(osName)
	req.NotEmpty(err)
	req.Empty(err.(*UnsupportedOSError).Unwrap())
}
