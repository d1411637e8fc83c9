// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"crypto/x509"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLooksLikeMissingRootCA(t *testing.T) {
	require.False(t, looksLikeMissingRootCA(nil))
	require.False(t, looksLikeMissingRootCA(errors.New("connection refused")))
	require.True(t, looksLikeMissingRootCA(x509.UnknownAuthorityError{}))
	require.True(t, looksLikeMissingRootCA(errors.New("x509: certificate signed by unknown authority")))
}

func TestRelaxedClient_BuildsWithSystemPool(t *testing.T) {
	client, err := relaxedClient()
	require.NoError(t, err)
	require.NotNil(t, client)
	require.NotNil(t, client.Transport)
}
