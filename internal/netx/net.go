// Package netx talks to object storage through presigned URLs.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxImageSize bounds a profile image upload.
const MaxImageSize = 5 << 20

var httpClient = &http.Client{}

// PutPresigned uploads body to a presigned PUT URL. The content type is
// sniffed from the first bytes.
func PutPresigned(ctx context.Context, url string, body []byte) error {
	if len(body) == 0 {
		return fmt.Errorf("upload failed: empty body")
	}
	if len(body) > MaxImageSize {
		return fmt.Errorf("upload failed: %d bytes exceeds %d", len(body), MaxImageSize)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", http.DetectContentType(body))

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
