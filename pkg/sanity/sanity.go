/*
 * Copyright 2016-2022 Hedera Hashgraph, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sanity

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrInvalidURL       = errors.New("invalid download URL")
	ErrDomainNotAllowed = errors.New("domain not in allowlist")
	ErrPathEscapesBase  = errors.New("path escapes extraction base directory")
)

// ValidateURL parses rawURL and rejects anything that is not an https
// request to a host on the AllowedDomains allowlist (or a subdomain of
// one), guarding against SSRF via redirect-able or IP-literal download
// URLs embedded in a source adapter's catalogue response.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q is not https", ErrInvalidURL, u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%w: empty host", ErrInvalidURL)
	}

	if net.ParseIP(host) != nil {
		return nil, fmt.Errorf("%w: raw IP literal host %q", ErrInvalidURL, host)
	}

	for _, allowed := range allowedDomains {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return u, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrDomainNotAllowed, host)
}

// ValidatePathWithinBase joins base and rel, then confirms the cleaned
// result still lives under base. The archive engine calls this per entry
// while unpacking a tar/zip so a "../../etc/cron.d/evil" member can't
// zip-slip its way outside the cache directory.
func ValidatePathWithinBase(base, rel string) (string, error) {
	joined := filepath.Join(base, rel)

	cleanBase := filepath.Clean(base)
	cleanJoined := filepath.Clean(joined)

	if cleanJoined != cleanBase && !strings.HasPrefix(cleanJoined, cleanBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathEscapesBase, rel)
	}

	return cleanJoined, nil
}

// Alphanumeric ensures the input string to be ascii alphanumeric
func Alphanumeric(s string) string {
	sb := []byte(s)
	j := 0
	for _, b := range sb {
		if ('a' <= b && b <= 'z') ||
			('A' <= b && b <= 'Z') ||
			('0' <= b && b <= '9') {
			sb[j] = b
			j++
		}
	}
	return string(sb[:j])
}

// Filename sanitize the input string to be safe filename
// It only allows alphanumeric characters (a-z, A-Z, 0-9), underscore and hyphen
// It returns error if the filename is empty string after the sanitization
func Filename(s string) (string, error) {
	sb := []byte(s)
	j := 0
	for _, b := range sb {
		if ('a' <= b && b <= 'z') ||
			('A' <= b && b <= 'Z') ||
			('0' <= b && b <= '9') ||
			b == '_' ||
			b == '-' {
			sb[j] = b
			j++
		}
	}

	if j == 0 {
		return "", ErrInvalidFilename
	}

	return string(sb[:j]), nil
}
