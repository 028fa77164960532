package keys

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// maxKeySize caps how much of a key URL response is read
const maxKeySize = 1 << 20

// Inspect downloads the GPG key at url and returns its primary key
// fingerprint. It runs from the local machine, so callers should treat
// failures as advisory rather than fatal.
func Inspect(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build key request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch key from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch key from %s: status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxKeySize))
	if err != nil {
		return "", fmt.Errorf("failed to read key from %s: %w", url, err)
	}

	return Fingerprint(data)
}

// Fingerprint parses an armored or binary GPG key and returns the
// primary key fingerprint
func Fingerprint(data []byte) (string, error) {
	// Try to parse as armored key first
	entityList, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		// Try as binary key
		entityList, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entityList) == 0 {
		return "", fmt.Errorf("no keys found")
	}

	return fmt.Sprintf("%X", entityList[0].PrimaryKey.Fingerprint), nil
}
