// Package user implements the user repository over the keyed blob store.
package user

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/GhoshCoop/membergate-go/internal/domain/user"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/store"
)

// KeyUsersDatabase is the storage key holding all registered users.
const KeyUsersDatabase = "users_database"

// storedUser carries the password hash that the domain entity never
// serializes outward.
type storedUser struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	DateOfBirth  string     `json:"dateOfBirth"`
	PasswordHash string     `json:"passwordHash"`
	Role         user.Role  `json:"role"`
	RegisteredAt time.Time  `json:"registeredAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

type usersDatabase struct {
	Users []storedUser `json:"users"`
}

// Repository persists user records as one users_database blob.
type Repository struct {
	store store.Store
	mu    sync.Mutex // serializes read-modify-write of the blob
}

// NewRepository creates a user repository over the given store.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

func toDomain(su storedUser) user.User {
	return user.User{
		ID:           su.ID,
		FullName:     su.FullName,
		DateOfBirth:  su.DateOfBirth,
		PasswordHash: su.PasswordHash,
		Role:         su.Role,
		RegisteredAt: su.RegisteredAt,
		LastLogin:    su.LastLogin,
	}
}

func fromDomain(u user.User) storedUser {
	return storedUser{
		ID:           u.ID,
		FullName:     u.FullName,
		DateOfBirth:  u.DateOfBirth,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		RegisteredAt: u.RegisteredAt,
		LastLogin:    u.LastLogin,
	}
}

func (r *Repository) loadDatabase() (usersDatabase, error) {
	var db usersDatabase

	data, ok, err := r.store.Get(KeyUsersDatabase)
	if err != nil {
		return db, err
	}
	if !ok {
		return db, nil
	}

	if err := json.Unmarshal(data, &db); err != nil {
		log.Printf("Corrupted users database, starting empty: %v", err)
		return usersDatabase{}, nil
	}
	return db, nil
}

func (r *Repository) saveDatabase(db usersDatabase) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return r.store.Set(KeyUsersDatabase, data)
}

func (r *Repository) All() ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return nil, err
	}

	users := make([]user.User, 0, len(db.Users))
	for _, su := range db.Users {
		users = append(users, toDomain(su))
	}
	return users, nil
}

func (r *Repository) FindByID(id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return nil, err
	}

	for _, su := range db.Users {
		if su.ID == id {
			found := toDomain(su)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *Repository) FindByName(fullName string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findByName(fullName)
}

// findByName must be called with r.mu held.
func (r *Repository) findByName(fullName string) (*user.User, error) {
	db, err := r.loadDatabase()
	if err != nil {
		return nil, err
	}

	normalized := strings.ToLower(fullName)
	for _, su := range db.Users {
		if strings.ToLower(su.FullName) == normalized {
			found := toDomain(su)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *Repository) ExistsByName(fullName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found, err := r.findByName(fullName)
	if err != nil {
		return false, err
	}
	return found != nil, nil
}

func (r *Repository) Store(u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return err
	}

	db.Users = append(db.Users, fromDomain(u))
	return r.saveDatabase(db)
}

func (r *Repository) UpdateLastLogin(id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDatabase()
	if err != nil {
		return false, err
	}

	for i := range db.Users {
		if db.Users[i].ID == id {
			stamp := at
			db.Users[i].LastLogin = &stamp
			if err := r.saveDatabase(db); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
