// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIllegalArgumentError_HappyPath(t *testing.T) {
	req := require.New(t)
	argName := "name"
	reason := "name argument must be a string"
	expected := fmt.Sprintf(illegalArgErrorMsg, argName, 6, reason)

	err := NewIllegalArgumentError(nil, argName, reason, 6)
	req.NotEmpty(err)
	req.EqualError(err, expected)

	req.Equal(argName, err.(*IllegalArgumentError).ArgName())
	req.Equal(reason, err.(*IllegalArgumentError).Reason())
	req.Equal(6, err.(*IllegalArgumentError).Value())

	details := err.(*IllegalArgumentError).SafeDetails()
	req.Equal(argName, details[0])
	req.Equal(reason, details[1])
}

type complexType struct {
	name  string
	value int32
}

var testComplexType = complexType{name: "complex", value: 6}

func TestIllegalArgumentError_ComplexValue(t *testing.T) {
	req := require.New(t)
	argName := "name"
	reason := "name argument must be a string"
	expected := fmt.Sprintf(illegalArgErrorMsg, argName, testComplexType, reason)

	err := NewIllegalArgumentError(nil, argName, reason, testComplexType)
	req.NotEmpty(err)
	req.Equal(expected, err.Error())

	req.Equal(argName, err.(*IllegalArgumentError).ArgName())
	req.Equal(reason, err.(*IllegalArgumentError).Reason())
	req.Equal(testComplexType, err.(*IllegalArgumentError).Value())

	// Is test
	req.True(errors.Is(err, &IllegalArgumentError{}))
}

func TestIllegalArgumentError_EmptyParameters(t *testing.T) {
	req := require.New(t)
	argName := ""
	reason := ""
	value := ""
	err := NewIllegalArgumentError(nil, argName, reason, value)
	req.NotEmpty(err)

	expected := fmt.Sprintf(illegalArgErrorMsg, argName, value, reason)
	req.Equal(expected, err.Error())
}

func TestIllegalArgumentError_Cause(t *testing.T) {
	req := require.New(t)
	err := NewIllegalArgumentError(nil, "name", "some reason", "6")
	req.NotEmpty(err)
	req.Empty(err.(*IllegalArgumentError).Cause())
}

func TestIllegalArgumentError_Unwrap(t *testing.T) {
	req := require.New(t)
	err := NewIllegalArgumentError(nil, "name", "some reason", "6")
	req.NotEmpty(err)
	req.Empty(err.(*IllegalArgumentError).Unwrap())
}

func TestIllegalArgumentError_Error(t *testing.T) {
	req := require.New(t)
	argName := "my_arg"
	reason := "some reason"
	value := "6"

	err := NewIllegalArgumentError(nil, argName, reason, value)
	req.NotEmpty(err)

	errMsg := err.(*IllegalArgumentError).Error()
	req.NotEmpty(errMsg)
	req.Equal(fmt.Sprintf(illegalArgErrorMsg, argName, value, reason), errMsg)
}
