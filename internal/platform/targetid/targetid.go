package targetid

import (
	"crypto/sha256"
	"encoding/hex"
)

// Derive maps an opaque platform token to the stable string identifier that
// keys every shared record for a target. Tokens are blobs, not names; the
// registry and the intercept processes must derive identical identifiers
// without talking to each other, so the derivation lives here and nowhere
// else.
func Derive(kind string, token []byte) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write(token)
	return kind + "-" + hex.EncodeToString(h.Sum(nil)[:8])
}
