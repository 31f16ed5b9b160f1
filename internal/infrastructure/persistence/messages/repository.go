// Package messages implements the contact-message repository over the keyed
// blob store.
package messages

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/GhoshCoop/membergate-go/internal/domain/messages"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/store"
)

// KeyMessagesBackup is the storage key holding the append-only message log.
const KeyMessagesBackup = "messages_backup"

type messagesDatabase struct {
	Messages []messages.StoredMessage `json:"messages"`
}

// Repository persists contact messages as one messages_backup blob.
type Repository struct {
	store store.Store
	mu    sync.Mutex // serializes read-modify-write of the blob
}

// NewRepository creates a message repository over the given store.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

func (r *Repository) loadDatabase() (messagesDatabase, error) {
	var db messagesDatabase

	data, ok, err := r.store.Get(KeyMessagesBackup)
	if err != nil {
		return db, err
	}
	if !ok {
		return db, nil
	}

	if err := json.Unmarshal(data, &db); err != nil {
		log.Printf("Corrupted messages backup, starting empty: %v", err)
		return messagesDatabase{}, nil
	}
	return db, nil
}

func (r *Repository) saveDatabase(db messagesDatabase) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return r.store.Set(KeyMessagesBackup, data)
}

func (r *Repository) All() ([]messages.StoredMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return nil, err
	}
	return db.Messages, nil
}

func (r *Repository) FindByID(id string) (*messages.StoredMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return nil, err
	}

	for i := range db.Messages {
		if db.Messages[i].ID == id {
			found := db.Messages[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (r *Repository) Append(m messages.StoredMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return err
	}

	db.Messages = append(db.Messages, m)
	return r.saveDatabase(db)
}

func (r *Repository) UpdateStatus(id string, status messages.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return false, err
	}

	for i := range db.Messages {
		if db.Messages[i].ID == id {
			db.Messages[i].Status = status
			if err := r.saveDatabase(db); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
