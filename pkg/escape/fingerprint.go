package escape

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// FingerprintError is returned when data holds a value that can't be
// normalized, such as a channel or a func.
type FingerprintError struct {
	Err error
}

func (e *FingerprintError) Error() string {
	return fmt.Sprintf("escape: unable to fingerprint data: %v", e.Err)
}

func (e *FingerprintError) Unwrap() error {
	return e.Err
}

// Fingerprint returns a stable digest of data. Map keys are sorted before
// hashing, so two maps with equal contents share a fingerprint.
func Fingerprint(data map[string]any) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", &FingerprintError{Err: err}
	}

	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
