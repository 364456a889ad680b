package repository

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/idgen"
	"github.com/telalestate/propertydesk/internal/store"
)

// UserRepository implements domain.UserRepository over the store's users
// collection. User changes are not published to the event feed.
type UserRepository struct {
	store  *store.Store
	ids    idgen.Generator
	logger *slog.Logger
}

func NewUserRepository(st *store.Store, ids idgen.Generator, logger *slog.Logger) *UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserRepository{store: st, ids: ids, logger: logger}
}

func (r *UserRepository) Create(user *domain.User) error {
	if user.ID == "" {
		user.ID = r.ids.NewID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = "user"
	}

	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.Users {
			if strings.EqualFold(db.Users[i].Email, user.Email) {
				return fmt.Errorf("email %s already registered", user.Email)
			}
		}
		db.Users = append(db.Users, *user)
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("user created", slog.String("user_id", user.ID))
	return nil
}

func (r *UserRepository) GetByID(id string) (*domain.User, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range db.Users {
		if db.Users[i].ID == id {
			u := db.Users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range db.Users {
		if strings.EqualFold(db.Users[i].Email, email) {
			u := db.Users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

func (r *UserRepository) Update(user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	return r.store.Update(func(db *domain.Database) error {
		for i := range db.Users {
			if db.Users[i].ID == user.ID {
				db.Users[i] = *user
				return nil
			}
		}
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	})
}
