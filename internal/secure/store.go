package secure

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"

	"github.com/keyhound/keyhound/internal/model"
)

// Key-derivation parameters. The iteration count follows the common
// PBKDF2 baseline for keys that only gate in-memory material.
const (
	keyLen     = chacha20poly1305.KeySize
	saltLen    = 16
	kdfRounds  = 4096
	maskRune   = "*"
	ellipsis   = "..."
	checksumLn = 16
)

// MaxAccessLog bounds the audit ring; the oldest entries are dropped
// once the ring exceeds this length.
const MaxAccessLog = 1000

// AccessRecord is one entry in the audit ring. It identifies the
// record acted on but never its contents.
type AccessRecord struct {
	// Timestamp is when the operation happened.
	Timestamp time.Time `json:"timestamp"`

	// Action is the operation name: store, get, remove, clear_all.
	Action string `json:"action"`

	// ResourceID is the record id the operation touched, empty for
	// clear_all.
	ResourceID string `json:"resource_id,omitempty"`
}

// Options configures a Store.
type Options struct {
	// AuditAccess enables the access log. Disabled, the ring stays
	// empty and appends are skipped.
	AuditAccess bool

	// Passphrase optionally fixes the key-derivation passphrase.
	// Empty (the default) means a random per-process passphrase; set
	// it only when deterministic ciphertext is required, e.g. tests.
	Passphrase string
}

// Store holds encrypted secret material keyed by id.
//
// All operations are serialized by a single mutex, satisfying the
// single-writer-per-id contract. Plaintext exists only inside a single
// Seal or Open call; buffers handed to Store are zeroized once
// encryption succeeds, and ciphertext is zeroized before removal.
type Store struct {
	mu      sync.Mutex
	records map[string][]byte
	log     []AccessRecord
	audit   bool
	key     []byte
	closed  bool
}

// New creates a Store with a freshly derived encryption key.
func New(opts Options) (*Store, error) {
	passBytes := []byte(opts.Passphrase)
	if len(passBytes) == 0 {
		passBytes = make([]byte, 32)
		if _, err := rand.Read(passBytes); err != nil {
			return nil, opError("init", model.SeverityHigh, err)
		}
	}
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, opError("init", model.SeverityHigh, err)
	}

	key := pbkdf2.Key(passBytes, salt, kdfRounds, keyLen, sha256.New)
	Zeroize(passBytes)
	Zeroize(salt)

	return &Store{
		records: make(map[string][]byte),
		audit:   opts.AuditAccess,
		key:     key,
	}, nil
}

// Store encrypts data and retains the ciphertext under id, replacing
// any previous record. The caller's buffer is zeroized once encryption
// succeeds; callers holding secrets in strings cannot be zeroized and
// should not pass long-lived secret strings.
func (s *Store) Store(id string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return opError("store", model.SeverityHigh, fmt.Errorf("store is closed"))
	}

	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return opError("store", model.SeverityHigh, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return opError("store", model.SeverityHigh, err)
	}

	if old, ok := s.records[id]; ok {
		Zeroize(old)
	}
	s.records[id] = aead.Seal(nonce, nonce, data, nil)
	Zeroize(data)
	s.appendLog("store", id)
	return nil
}

// Get decrypts and returns a fresh plaintext buffer for id. The stored
// ciphertext is never mutated. Unknown ids return ErrNotFound; a
// decryption failure is a broken custody guarantee and returns an
// OperationError with SeverityHigh.
func (s *Store) Get(id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return nil, opError("get", model.SeverityHigh, err)
	}
	if len(ct) < aead.NonceSize() {
		return nil, opError("get", model.SeverityHigh, fmt.Errorf("ciphertext shorter than nonce"))
	}

	plaintext, err := aead.Open(nil, ct[:aead.NonceSize()], ct[aead.NonceSize():], nil)
	if err != nil {
		return nil, opError("get", model.SeverityHigh, err)
	}
	s.appendLog("get", id)
	return plaintext, nil
}

// Remove zeroizes and discards the record for id. Removing an unknown
// id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ct, ok := s.records[id]; ok {
		Zeroize(ct)
		delete(s.records, id)
	}
	s.appendLog("remove", id)
}

// ClearAll zeroizes and discards every record. It is invoked by the
// Guard on termination signals and faults, and is safe to call more
// than once.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.appendLog("clear_all", "")
}

// clearLocked zeroizes all records. Caller holds the mutex.
func (s *Store) clearLocked() {
	for id, ct := range s.records {
		Zeroize(ct)
		delete(s.records, id)
	}
}

// Close clears all records and zeroizes the encryption key. The store
// is unusable afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	Zeroize(s.key)
	s.closed = true
}

// Len returns the number of retained records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// GetAccessLog returns a copy of the audit ring, oldest first.
func (s *Store) GetAccessLog() []AccessRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AccessRecord, len(s.log))
	copy(out, s.log)
	return out
}

// appendLog appends to the audit ring, dropping the oldest entry once
// the ring is full. Caller holds the mutex. Never logs record contents.
func (s *Store) appendLog(action, id string) {
	if !s.audit {
		return
	}
	s.log = append(s.log, AccessRecord{
		Timestamp:  time.Now().UTC(),
		Action:     action,
		ResourceID: id,
	})
	if len(s.log) > MaxAccessLog {
		s.log = s.log[len(s.log)-MaxAccessLog:]
	}
}

// TruncateForDisplay masks a sensitive string for display. Short
// strings (length at most twice visible) are fully masked; longer ones
// reveal only the first and last visible characters joined by an
// ellipsis. Interior bytes are never revealed.
func TruncateForDisplay(text string, visible int) string {
	if visible <= 0 || len(text) <= 2*visible {
		return strings.Repeat(maskRune, len(text))
	}
	return text[:visible] + ellipsis + text[len(text)-visible:]
}

// CreateChecksum returns a truncated digest (the first 16 hex
// characters of SHA-256) usable as an integrity checksum.
func CreateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:checksumLn]
}

// VerifyChecksum recomputes and compares the truncated digest.
func VerifyChecksum(data []byte, checksum string) bool {
	return CreateChecksum(data) == checksum
}

// Zeroize overwrites a buffer with zero bytes so residual secret
// material does not linger in memory.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
