package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria, indexados por ID.
type UserRepo struct {
	with access
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.with(ctx, func(st *state) error {
		if user.ID == "" {
			user.ID = uuid.New().String()
		}
		for _, u := range st.users {
			if strings.EqualFold(u.Username, user.Username) {
				return domain.ErrDuplicate
			}
		}
		now := time.Now().UTC()
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		user.UpdatedAt = now
		st.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.with(ctx, func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.with(ctx, func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Username, username) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.with(ctx, func(st *state) error {
		n = len(st.users)
		return nil
	})
	return n, err
}
