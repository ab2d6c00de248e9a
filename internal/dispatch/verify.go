package dispatch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/conn-castle/sdkdl/internal/messages"
)

// maxChecksumBytes bounds the .sha256 companion body.
const maxChecksumBytes = 1024

// Verifier compares a local archive against the SHA-256 digest published
// next to it.
type Verifier struct {
	client *http.Client
}

// NewVerifier returns a Verifier using the package HTTP client.
func NewVerifier() *Verifier {
	return &Verifier{client: httpClient}
}

// Verify fetches desc.ChecksumURL and compares it, byte for byte, with the
// digest of archivePath.
func (v *Verifier) Verify(ctx context.Context, desc Descriptor, archivePath string) error {
	expected, err := v.fetchExpected(ctx, desc.ChecksumURL())
	if err != nil {
		return err
	}
	actual, err := fileSHA256(archivePath)
	if err != nil {
		return err
	}
	if actual != expected {
		return newError(ErrChecksumMismatch, messages.DispatchChecksumMismatchFmt, archivePath, expected, actual)
	}
	return nil
}

func (v *Verifier) fetchExpected(ctx context.Context, url string) (string, error) {
	req, err := newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return "", err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf(messages.DispatchChecksumFetchFmt, url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(messages.DispatchChecksumStatusFmt, url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxChecksumBytes))
	if err != nil {
		return "", fmt.Errorf(messages.DispatchChecksumReadFmt, url, err)
	}
	return strings.TrimSpace(string(body)), nil
}

// fileSHA256 returns the lowercase hex SHA-256 of path.
func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf(messages.DispatchOpenFileFmt, path, err)
	}
	defer func() { _ = file.Close() }()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf(messages.DispatchHashFileFmt, path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
