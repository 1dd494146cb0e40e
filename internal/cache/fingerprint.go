package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintDelimiter separates the digest inputs. The unit separator
// does not occur in natural text, so "a"+"bc" and "ab"+"c" cannot
// produce the same digest.
const fingerprintDelimiter = "\x1f"

// Fingerprint returns a stable digest over the analysis inputs. Identical
// (text, jobTitle, jobDescription) triples always produce the same value.
func Fingerprint(resumeText, jobTitle, jobDescription string) string {
	h := sha256.New()
	h.Write([]byte(resumeText))
	h.Write([]byte(fingerprintDelimiter))
	h.Write([]byte(jobTitle))
	h.Write([]byte(fingerprintDelimiter))
	h.Write([]byte(jobDescription))
	return hex.EncodeToString(h.Sum(nil))
}
