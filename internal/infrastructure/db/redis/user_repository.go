package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userhub/user-api/internal/core/domain"
)

const (
	defaultPrefix = "users"
	opTimeout     = 5 * time.Second
)

// UserRepository implements ports.UserRepository on Redis.
//
// Key layout, for prefix "users":
//
//	users:seq            INCR counter handing out IDs
//	users:ids            list of IDs in insertion order
//	users:<id>           hash holding one user
//	users:email:<email>  uniqueness guard, value is the owning ID
type UserRepository struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewUserRepository returns a repository storing keys under prefix, or under
// "users" when prefix is empty.
func NewUserRepository(client *redis.Client, prefix string) *UserRepository {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &UserRepository{client: client, prefix: prefix, now: time.Now}
}

// Create claims the email guard, allocates the next ID and writes the user
// hash. A taken email is reported as domain.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	emailKey := r.emailKey(u.Email)
	claimed, err := r.client.SetNX(ctx, emailKey, "", 0).Result()
	if err != nil {
		return nil, fmt.Errorf("claim email: %w", err)
	}
	if !claimed {
		return nil, domain.ErrEmailTaken
	}

	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		r.release(emailKey)
		return nil, fmt.Errorf("allocate user id: %w", err)
	}

	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}
	created := u.WithID(strconv.FormatInt(id, 10), createdAt.UTC())
	if created.Role == "" {
		created.Role = domain.RoleUser
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.userKey(created.ID), toHash(created))
		pipe.RPush(ctx, r.idsKey(), created.ID)
		pipe.Set(ctx, emailKey, created.ID, 0)
		return nil
	})
	if err != nil {
		r.release(emailKey)
		return nil, fmt.Errorf("store user: %w", err)
	}

	return created, nil
}

// FindAll returns users in insertion order.
func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ids, err := r.client.LRange(ctx, r.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, r.userKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	out := make([]*domain.User, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		u, err := fromHash(ids[i], fields)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// FindByID treats any ID that is not a positive integer in canonical decimal
// form as absent so that arbitrary input can never address keys outside the
// user hashes.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 || strconv.FormatInt(n, 10) != id {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	fields, err := r.client.HGetAll(ctx, r.userKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fromHash(id, fields)
}

func (r *UserRepository) release(emailKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	_ = r.client.Del(ctx, emailKey).Err()
}

func (r *UserRepository) seqKey() string { return r.prefix + ":seq" }
func (r *UserRepository) idsKey() string { return r.prefix + ":ids" }
func (r *UserRepository) userKey(id string) string { return r.prefix + ":" + id }
func (r *UserRepository) emailKey(e string) string { return r.prefix + ":email:" + e }

func toHash(u *domain.User) map[string]any {
	return map[string]any{
		"name":      u.Name,
		"email":     u.Email,
		"role":      u.Role,
		"createdAt": u.CreatedAt.Format(time.RFC3339Nano),
	}
}

func fromHash(id string, h map[string]string) (*domain.User, error) {
	var createdAt time.Time
	if raw := h["createdAt"]; raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("decode user %s: createdAt: %w", id, err)
		}
		createdAt = ts
	}

	role := h["role"]
	if role == "" {
		role = domain.RoleUser
	}

	return &domain.User{
		ID:        id,
		Name:      h["name"],
		Email:     h["email"],
		Role:      role,
		CreatedAt: createdAt,
	}, nil
}
