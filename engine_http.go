package riotauth

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/zstd"
)

// doJSON sends one JSON request and decodes one JSON response. Every request
// carries the fixed client headers; authorization is added only when set.
// Setting Accept-Encoding by hand disables net/http's transparent gzip, so
// the response body is decompressed here by Content-Encoding.
func (e *Engine) doJSON(ctx context.Context, method, url, userAgentSuffix, authorization string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Accept-Encoding", "deflate, gzip, zstd")
	req.Header.Set("User-Agent", fmt.Sprintf(e.config.HTTP.UserAgentFormat, userAgentSuffix))
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s %s", resp.StatusCode, method, url)
	}

	reader, err := decodeBody(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response from %s %s: %w", method, url, err)
	}
	return nil
}

func decodeBody(encoding string, body io.Reader) (io.ReadCloser, error) {
	switch encoding {
	case "", "identity":
		return io.NopCloser(body), nil
	case "gzip":
		return gzip.NewReader(body)
	case "deflate":
		// HTTP deflate means a zlib-wrapped stream (RFC 9110), but some
		// servers send raw flate anyway; accept both.
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return flate.NewReader(bytes.NewReader(data)), nil
		}
		return zr, nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}
