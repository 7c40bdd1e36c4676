package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes one ingested input, mainly for run bookkeeping.
type Metadata struct {
	Source    string `json:"source,omitempty"`
	Timestamp string `json:"timestamp"`
	Hash      string `json:"hash"`
	Chars     int    `json:"chars"`
}

// NewMetadata stamps the cleaned content with its source and SHA-256 digest.
func NewMetadata(content, source string) *Metadata {
	sum := sha256.Sum256([]byte(content))
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      hex.EncodeToString(sum[:]),
		Chars:     len(content),
	}
}

// ToJSON marshals the metadata, indented for artifact files.
func (m *Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}
