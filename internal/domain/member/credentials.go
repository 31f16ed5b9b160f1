// Package member defines the pre-issued credential records used for
// out-of-band member verification, and the read-only directory holding them.
package member

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Credential is one pre-issued (name, access code) pair handed to a member
// outside the system. Records are immutable once loaded.
type Credential struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Code     string `json:"code"`
}

// Directory is the fixed set of credentials. Lookups are read-only.
type Directory struct {
	members []Credential
}

type directoryFile struct {
	Members []Credential `json:"members"`
}

// NewDirectory wraps a fixed credential list.
func NewDirectory(members []Credential) *Directory {
	return &Directory{members: members}
}

// LoadDirectory reads the credential directory from a JSON file of the shape
// {"members": [...]}.
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read member codes file: %w", err)
	}

	var file directoryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse member codes file: %w", err)
	}

	return &Directory{members: file.Members}, nil
}

// Find returns the credential matching the already-normalized name (trimmed,
// lowercased) and code (trimmed, case-sensitive), or nil.
func (d *Directory) Find(normalizedName, code string) *Credential {
	for i := range d.members {
		if strings.ToLower(d.members[i].FullName) == normalizedName && d.members[i].Code == code {
			return &d.members[i]
		}
	}
	return nil
}

// Exists reports whether any credential carries the given full name,
// case-insensitively.
func (d *Directory) Exists(fullName string) bool {
	normalized := strings.ToLower(strings.TrimSpace(fullName))
	for i := range d.members {
		if strings.ToLower(d.members[i].FullName) == normalized {
			return true
		}
	}
	return false
}

// Names returns every member name in the directory.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.members))
	for i := range d.members {
		names = append(names, d.members[i].FullName)
	}
	return names
}

// Len returns the number of credentials in the directory.
func (d *Directory) Len() int {
	return len(d.members)
}
