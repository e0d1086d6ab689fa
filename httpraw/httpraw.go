// httpraw.go: Plain-text dump of HTTP responses.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

// Package httpraw renders an HTTP response as raw text for logs and debugging.
package httpraw

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// ErrNilResponse is returned by Dump when resp is nil.
var ErrNilResponse = errors.New("httpraw: nil response")

// Dump renders resp as:
//
//	HTTP 200 OK
//	Content-Type=text/plain
//
//	<body>
//
// There is one Key=Value line per header value, sorted by key. The body is read
// in full and put back on resp, so the caller can still consume it.
func Dump(resp *http.Response) (string, error) {
	if resp == nil {
		return "", ErrNilResponse
	}

	var sb strings.Builder
	sb.WriteString("HTTP ")
	sb.WriteString(strconv.Itoa(resp.StatusCode))
	if text := statusText(resp); text != "" {
		sb.WriteByte(' ')
		sb.WriteString(text)
	}
	sb.WriteByte('\n')

	keys := make([]string, 0, len(resp.Header))
	for key := range resp.Header {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		for _, value := range resp.Header[key] {
			sb.WriteString(key)
			sb.WriteByte('=')
			sb.WriteString(value)
			sb.WriteByte('\n')
		}
	}
	sb.WriteByte('\n')

	if resp.Body != nil && resp.Body != http.NoBody {
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("reading response body: %w", err)
		}
		sb.Write(body)
	}

	return sb.String(), nil
}

// statusText prefers the canonical reason phrase and falls back to whatever the
// server sent after the code.
func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}
