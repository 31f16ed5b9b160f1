// Package session implements the session repository over the keyed blob store.
package session

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/GhoshCoop/membergate-go/internal/domain/session"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/store"
)

// Storage keys. The layout matches the original client-local storage surface.
const (
	KeyMachinesDatabase = "machines_database"
	KeyMachineID        = "machine_id"
	KeyMemberName       = "member_name"
)

type machinesDatabase struct {
	Machines []session.MachineSession `json:"machines"`
}

// Repository persists session records as one machines_database blob plus the
// machine_id / member_name single-value keys.
type Repository struct {
	store store.Store
	mu    sync.Mutex // serializes read-modify-write of the blob
}

// NewRepository creates a session repository over the given store.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// loadDatabase reads the machines blob. A corrupted blob degrades to an empty
// directory rather than failing the caller.
func (r *Repository) loadDatabase() (machinesDatabase, error) {
	var db machinesDatabase

	data, ok, err := r.store.Get(KeyMachinesDatabase)
	if err != nil {
		return db, err
	}
	if !ok {
		return db, nil
	}

	if err := json.Unmarshal(data, &db); err != nil {
		log.Printf("Corrupted machines database, starting empty: %v", err)
		return machinesDatabase{}, nil
	}
	return db, nil
}

func (r *Repository) saveDatabase(db machinesDatabase) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return r.store.Set(KeyMachinesDatabase, data)
}

func (r *Repository) All() ([]session.MachineSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return nil, err
	}
	return db.Machines, nil
}

func (r *Repository) Replace(s session.MachineSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return err
	}

	kept := db.Machines[:0]
	for _, m := range db.Machines {
		if m.MachineID != s.MachineID {
			kept = append(kept, m)
		}
	}
	db.Machines = append(kept, s)

	return r.saveDatabase(db)
}

func (r *Repository) FindByMachineID(machineID string) (*session.MachineSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return nil, err
	}

	for i := range db.Machines {
		if db.Machines[i].MachineID == machineID {
			found := db.Machines[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (r *Repository) Touch(machineID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return false, err
	}

	for i := range db.Machines {
		if db.Machines[i].MachineID == machineID {
			db.Machines[i].LastAccessTime = at
			if err := r.saveDatabase(db); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) Remove(machineID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return err
	}

	kept := db.Machines[:0]
	for _, m := range db.Machines {
		if m.MachineID != machineID {
			kept = append(kept, m)
		}
	}
	db.Machines = kept

	return r.saveDatabase(db)
}

func (r *Repository) RememberMachineID(machineID string) error {
	return r.store.Set(KeyMachineID, []byte(machineID))
}

func (r *Repository) RememberedMachineID() (string, error) {
	data, ok, err := r.store.Get(KeyMachineID)
	if err != nil || !ok {
		return "", err
	}
	return string(data), nil
}

func (r *Repository) ForgetMachineID() error {
	return r.store.Delete(KeyMachineID)
}

func (r *Repository) StoreMemberName(name string) error {
	return r.store.Set(KeyMemberName, []byte(name))
}

func (r *Repository) StoredMemberName() (string, error) {
	data, ok, err := r.store.Get(KeyMemberName)
	if err != nil || !ok {
		return "", err
	}
	return string(data), nil
}

func (r *Repository) ForgetMemberName() error {
	return r.store.Delete(KeyMemberName)
}
