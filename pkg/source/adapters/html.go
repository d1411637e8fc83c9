// SPDX-License-Identifier: Apache-2.0

// Package adapters implements gg's per-tool source.Adapter catalogue
// (§4.4): one file per adapter family, sharing the httpClient/html
// link-scraping helpers in this file.
package adapters

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"golang.org/x/net/html"
)

// defaultHTTPClient is shared by every scraping adapter; tests substitute a
// per-case *http.Client pointed at an httptest.Server.
var defaultHTTPClient = &http.Client{}

// getBody issues a GET against rawURL and returns the response body bytes.
func getBody(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// extractHrefs walks parsed HTML and returns every <a href="..."> value, the
// same recursive-descent pattern the Apache/Maven directory-listing scraper
// and the Go downloads-page scraper both use.
func extractHrefs(doc *html.Node) []string {
	var hrefs []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return hrefs
}

// parseHrefs parses an HTML document and returns every anchor href in it.
func parseHrefs(body []byte) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return extractHrefs(doc), nil
}
