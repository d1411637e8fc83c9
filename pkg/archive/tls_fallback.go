// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"crypto/tls"
	"crypto/x509"
	_ "embed"
	"errors"
	"net/http"
	"strings"
)

//go:embed cacert.pem
var bundledCACert []byte

// looksLikeMissingRootCA reports whether err is the TLS signature a missing
// system root store produces, the trigger condition for the single-shot CA
// fallback.
func looksLikeMissingRootCA(err error) bool {
	if err == nil {
		return false
	}

	var unknownAuthority x509.UnknownAuthorityError
	var invalidCert x509.CertificateInvalidError
	if errors.As(err, &unknownAuthority) || errors.As(err, &invalidCert) {
		return true
	}

	// crypto/tls wraps the x509 error inside a generic error on some
	// platforms without preserving the concrete type; fall back to a
	// substring match on the well-known message.
	return strings.Contains(err.Error(), "certificate signed by unknown authority") ||
		strings.Contains(err.Error(), "x509: certificate is not trusted")
}

// relaxedClient returns an *http.Client whose root pool is the system pool
// augmented with the bundled fallback CA bundle, used for exactly one retry
// after looksLikeMissingRootCA matches.
func relaxedClient() (*http.Client, error) {
	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}

	pool.AppendCertsFromPEM(bundledCACert)

	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				RootCAs:    pool,
				MinVersion: tls.VersionTLS12,
			},
		},
	}, nil
}
