package notebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/kabunote/internal/db"
	"github.com/kailas-cloud/kabunote/internal/domain"
	domnb "github.com/kailas-cloud/kabunote/internal/domain/notebook"
)

const ownerSetSuffix = ":notebooks"

var (
	notebookKeyPrefix = domain.KeyPrefix + "notebook:"
	ownerKeyPrefix    = domain.KeyPrefix + "owner:"
)

// store is the consumer interface for notebooks (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the notebook repository contracts of the usecases.
type Repo struct {
	store store
}

// New creates a notebook repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save writes the whole notebook and registers it with its owner.
func (r *Repo) Save(ctx context.Context, nb *domnb.Notebook) error {
	data, err := json.Marshal(toDoc(nb))
	if err != nil {
		return fmt.Errorf("marshal notebook: %w", err)
	}
	key := notebookKey(nb.ID())
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, ownerKey(nb.Owner()), nb.ID()); err != nil {
		return fmt.Errorf("register notebook %s: %w", nb.ID(), err)
	}
	return nil
}

// Get returns a notebook of the given owner.
// Notebooks owned by somebody else are reported as not found.
func (r *Repo) Get(ctx context.Context, owner, id string) (domnb.Notebook, error) {
	nb, err := r.Lookup(ctx, id)
	if err != nil {
		return domnb.Notebook{}, err
	}
	if nb.Owner() != owner {
		return domnb.Notebook{}, domain.ErrNotebookNotFound
	}
	return nb, nil
}

// Lookup returns a notebook by ID regardless of its owner (batch jobs).
func (r *Repo) Lookup(ctx context.Context, id string) (domnb.Notebook, error) {
	key := notebookKey(id)
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domnb.Notebook{}, domain.ErrNotebookNotFound
		}
		return domnb.Notebook{}, fmt.Errorf("get %s: %w", key, err)
	}
	nb, err := decode(raw)
	if err != nil {
		return domnb.Notebook{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return nb, nil
}

// List returns every notebook of an owner, most recently updated first.
func (r *Repo) List(ctx context.Context, owner string) ([]domnb.Notebook, error) {
	ids, err := r.store.SMembers(ctx, ownerKey(owner))
	if err != nil {
		return nil, fmt.Errorf("list notebooks of %s: %w", owner, err)
	}
	if len(ids) == 0 {
		return []domnb.Notebook{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = notebookKey(id)
	}
	values, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load notebooks of %s: %w", owner, err)
	}

	out := make([]domnb.Notebook, 0, len(values))
	for i, raw := range values {
		// Stale set members (notebook removed out of band) are skipped.
		if raw == nil {
			continue
		}
		nb, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		if nb.Owner() != owner {
			continue
		}
		out = append(out, nb)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UpdatedAt().Equal(out[j].UpdatedAt()) {
			return out[i].UpdatedAt().After(out[j].UpdatedAt())
		}
		return out[i].ID() < out[j].ID()
	})
	return out, nil
}

// Delete removes a notebook of the given owner.
func (r *Repo) Delete(ctx context.Context, owner, id string) error {
	if _, err := r.Get(ctx, owner, id); err != nil {
		return err
	}
	key := notebookKey(id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if err := r.store.SRem(ctx, ownerKey(owner), id); err != nil {
		return fmt.Errorf("unregister notebook %s: %w", id, err)
	}
	return nil
}

// Owners returns every owner with at least one registered notebook, sorted.
func (r *Repo) Owners(ctx context.Context) ([]string, error) {
	keys, err := r.store.Scan(ctx, ownerKeyPrefix+"*"+ownerSetSuffix)
	if err != nil {
		return nil, fmt.Errorf("scan owners: %w", err)
	}
	owners := make([]string, 0, len(keys))
	for _, k := range keys {
		owner := strings.TrimSuffix(strings.TrimPrefix(k, ownerKeyPrefix), ownerSetSuffix)
		if owner != "" {
			owners = append(owners, owner)
		}
	}
	sort.Strings(owners)
	return owners, nil
}

func decode(raw []byte) (domnb.Notebook, error) {
	var d notebookDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return domnb.Notebook{}, err
	}
	return d.toDomain(), nil
}

func notebookKey(id string) string {
	return notebookKeyPrefix + id
}

func ownerKey(owner string) string {
	return ownerKeyPrefix + owner + ownerSetSuffix
}
