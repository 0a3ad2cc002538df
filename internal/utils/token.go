package utils // helper functions for tokens and upload filenames

import (
	"crypto/rand"  // secure random bytes for session tokens
	"encoding/hex" // hex encoding of random data
	"fmt"          // filename formatting
	"path/filepath"
	"strings"
	"time"
)

// NewSessionToken returns an opaque 64-character hex token used as the
// session cookie value and as the key into the session store. 32 bytes of
// entropy makes guessing a live session infeasible.
func NewSessionToken() (string, error) {
	return randomHex(32)
}

// UploadFileName builds a collision-free name for a stored upload:
// <prefix>_<userID>_<unix>_<random>.<ext>. The extension is taken from the
// client-supplied name but the rest is server-generated, so an uploaded file
// can never overwrite another user's file.
func UploadFileName(prefix string, userID uint64, original string) (string, error) {
	r, err := randomHex(4)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s_%d_%d_%s%s", prefix, userID, time.Now().UTC().Unix(), r, ext), nil
}

// randomHex returns a hex string generated from n bytes of cryptographically
// secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
