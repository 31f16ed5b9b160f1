// Package session defines the machine session entity and its repository
// interface. A session binds a device fingerprint to a verified member
// identity; the fingerprint is the unique key across the directory.
package session

import "time"

// MachineSession is one device's active session record.
type MachineSession struct {
	MachineID      string    `json:"machineId"`
	IPAddress      string    `json:"ipAddress"`
	MemberName     string    `json:"memberName"`
	MemberID       string    `json:"memberId"`
	LoginTime      time.Time `json:"loginTime"`
	LastAccessTime time.Time `json:"lastAccessTime"`
}

// Repository defines the operations for persisting session records and the
// single-value keys remembering this device's active session.
//
// Sessions have no expiry: a record lives until an explicit logout removes it.
// Storage failures must degrade to "absent" / failure indicators, never panic.
type Repository interface {
	// All returns every persisted session record.
	All() ([]MachineSession, error)
	// Replace removes any record sharing the machine ID and appends the new
	// record (idempotent last-writer-wins replace).
	Replace(s MachineSession) error
	// FindByMachineID returns the record for the fingerprint, or nil.
	FindByMachineID(machineID string) (*MachineSession, error)
	// Touch updates LastAccessTime on the matching record. Returns false when
	// no record matches.
	Touch(machineID string, at time.Time) (bool, error)
	// Remove deletes the record for the fingerprint.
	Remove(machineID string) error

	// RememberMachineID persists the fingerprint as this device's active
	// session key.
	RememberMachineID(machineID string) error
	// RememberedMachineID returns the stored fingerprint, or "" when absent.
	RememberedMachineID() (string, error)
	// ForgetMachineID clears the remembered fingerprint.
	ForgetMachineID() error

	// StoreMemberName caches the display name for quick access.
	StoreMemberName(name string) error
	// StoredMemberName returns the cached display name, or "".
	StoredMemberName() (string, error)
	// ForgetMemberName clears the cached display name.
	ForgetMemberName() error
}
