// Package password wraps bcrypt behind the Hash/Verify contract the user
// flows need: fresh salt per hash, self-describing blobs, and a rehash
// signal when a stored blob was produced at a lower cost than the hasher
// currently runs at.
package password

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

type VerifyResult int

const (
	Failure VerifyResult = iota
	Success
	// SuccessRehashNeeded means the candidate matched but the stored blob
	// uses outdated parameters; callers should re-hash on their next write.
	SuccessRehashNeeded
)

const fallbackDefaultPassword = "library123"

// DefaultPassword is the documented password assigned to accounts created
// without one. Overridable per deployment.
func DefaultPassword() string {
	if v := os.Getenv("DEFAULT_USER_PASSWORD"); v != "" {
		return v
	}
	return fallbackDefaultPassword
}

type Hasher struct {
	cost int

	// decoy blob burned on lookups that miss, so a wrong email and a wrong
	// password cost the same bcrypt comparison.
	dummy []byte
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("decoy-never-matches"), cost)
	if err != nil {
		panic(fmt.Sprintf("password: generate decoy hash: %v", err))
	}
	return &Hasher{cost: cost, dummy: dummy}
}

// Hash produces a salted bcrypt blob. Two calls with the same input yield
// different blobs.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("generate password hash: %w", err)
	}
	return string(b), nil
}

// Verify compares a candidate against a stored blob. Malformed blobs are a
// plain Failure, indistinguishable from a mismatch.
func (h *Hasher) Verify(blob, candidate string) VerifyResult {
	if err := bcrypt.CompareHashAndPassword([]byte(blob), []byte(candidate)); err != nil {
		return Failure
	}
	if cost, err := bcrypt.Cost([]byte(blob)); err == nil && cost < h.cost {
		return SuccessRehashNeeded
	}
	return Success
}

// DummyCompare spends one bcrypt comparison and always fails.
func (h *Hasher) DummyCompare(candidate string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(candidate))
}
