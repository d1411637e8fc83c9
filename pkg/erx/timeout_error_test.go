// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeoutError_HappyPath(t *testing.T) {
	req := require.New(t)
	operationName := "Open File"
	expected := fmt.Sprintf(timeoutErrorMsg, operationName)

	err := NewTimeoutError(operationName)
	req.NotEmpty(err)
	req.Equal(expected, err.Error())
	req.Equal(operationName, err.(*TimeoutError).Name())
	req.Equal(operationName, err.(*TimeoutError).SafeDetails()[0])
}

func TestTimeoutError_Is(t *testing.T) {
	req := require.New(t)
	operationName := "Open File"
	err := NewTimeoutError(operationName)
	req.True(errors.Is(err, &TimeoutError{}))
}

func TestTimeoutError_EmptyName(t *testing.T) {
	req := require.New(t)
	err := NewTimeoutError("")
	req.Empty(err)
}

func TestTimeoutError_Cause(t *testing.T) {
	req := require.New(t)
	operationName := "Open File"

	err := NewTimeoutError(operationName)
	req.NotEmpty(err)
	req.Empty(err.(*TimeoutError).Cause())
}

func TestTimeoutError_Unwrap(t *testing.T) {
	req := require.New(t)
	operationName := "Open File"

	err := NewTimeoutError(operationName)
	req.NotEmpty(err)
	req.Empty(err.(*TimeoutError).Unwrap())
}
