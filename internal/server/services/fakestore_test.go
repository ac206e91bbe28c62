package services

import (
	"context"
	"database/sql"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/pdstore/internal/common"
	"github.com/dmitrijs2005/pdstore/internal/dbx"
	"github.com/dmitrijs2005/pdstore/internal/server/models"
	"github.com/dmitrijs2005/pdstore/internal/server/repositories/challenges"
	"github.com/dmitrijs2005/pdstore/internal/server/repositories/memberships"
	"github.com/dmitrijs2005/pdstore/internal/server/repositories/users"
)

// memState is the whole fake database. Transactions work on a clone and
// swap it in on commit.
type memState struct {
	users      map[string]models.User
	challenges map[int64]string
	members    map[string]map[int64]struct{}
}

func (s *memState) clone() *memState {
	c := &memState{
		users:      maps.Clone(s.users),
		challenges: maps.Clone(s.challenges),
		members:    make(map[string]map[int64]struct{}, len(s.members)),
	}
	for id, set := range s.members {
		c.members[id] = maps.Clone(set)
	}
	return c
}

// memStore implements dbx.DB. One transaction runs at a time, which is a
// coarser version of the row lock the real reconciler takes.
type memStore struct {
	dbx.DBTX // never called; repositories read state through the handle

	mu    sync.Mutex
	state *memState

	txOpts  []*sql.TxOptions
	commits int
}

func newMemStore(catalog map[int64]string) *memStore {
	return &memStore{state: &memState{
		users:      map[string]models.User{},
		challenges: maps.Clone(catalog),
		members:    map[string]map[int64]struct{}{},
	}}
}

func (m *memStore) WithTx(ctx context.Context, opts *sql.TxOptions, fn dbx.TxFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.txOpts = append(m.txOpts, opts)
	if err := ctx.Err(); err != nil {
		return err
	}

	work := m.state.clone()
	if err := fn(ctx, &memTx{state: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.state = work
	m.commits++
	return nil
}

// members returns the committed membership set of userID in ascending order.
func (m *memStore) members(userID string) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.state.members[userID]))
}

func (m *memStore) user(userID string) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.state.users[userID]
	return u, ok
}

// memTx is the transactional handle passed to TxFunc.
type memTx struct {
	dbx.DBTX
	state *memState
}

// access runs fn against the state db refers to, taking the store lock for
// non-transactional handles.
func access(db dbx.DBTX, fn func(*memState) error) error {
	switch h := db.(type) {
	case *memTx:
		return fn(h.state)
	case *memStore:
		h.mu.Lock()
		defer h.mu.Unlock()
		return fn(h.state)
	default:
		panic("unexpected DBTX")
	}
}

// memManager vends repositories over memStore handles. fail injects an error
// for the named operation, e.g. "memberships.Replace".
type memManager struct {
	mu   sync.Mutex
	fail map[string]error
	// onLock runs inside LockByID, after the lock is taken.
	onLock func()
}

func (m *memManager) failure(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail[op]
}

func (m *memManager) setFailure(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail == nil {
		m.fail = map[string]error{}
	}
	m.fail[op] = err
}

func (m *memManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *memManager) Users(db dbx.DBTX) users.Repository {
	return &memUsers{db: db, m: m}
}

func (m *memManager) Challenges(db dbx.DBTX) challenges.Repository {
	return &memChallenges{db: db, m: m}
}

func (m *memManager) Memberships(db dbx.DBTX) memberships.Repository {
	return &memMemberships{db: db, m: m}
}

type memUsers struct {
	db dbx.DBTX
	m  *memManager
}

func (r *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if err := r.m.failure("users.Create"); err != nil {
		return nil, err
	}
	err := access(r.db, func(s *memState) error {
		for _, existing := range s.users {
			if existing.Email == u.Email {
				return common.ErrEmailInUse
			}
		}
		u.CreatedAt = time.Now()
		s.users[u.ID] = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := r.m.failure("users.GetByEmail"); err != nil {
		return nil, err
	}
	var out *models.User
	err := access(r.db, func(s *memState) error {
		for _, u := range s.users {
			if u.Email == email {
				out = &u
				return nil
			}
		}
		return common.ErrorNotFound
	})
	return out, err
}

func (r *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := r.m.failure("users.GetByID"); err != nil {
		return nil, err
	}
	var out *models.User
	err := access(r.db, func(s *memState) error {
		u, ok := s.users[id]
		if !ok {
			return common.ErrorNotFound
		}
		u.PasswordHash = ""
		out = &u
		return nil
	})
	return out, err
}

func (r *memUsers) LockByID(ctx context.Context, id string) (*models.User, error) {
	if err := r.m.failure("users.LockByID"); err != nil {
		return nil, err
	}
	u, err := r.GetByID(ctx, id)
	if err == nil && r.m.onLock != nil {
		r.m.onLock()
	}
	return u, err
}

func (r *memUsers) UpdateProfile(ctx context.Context, id string, f models.ProfileFields) error {
	if err := r.m.failure("users.UpdateProfile"); err != nil {
		return err
	}
	return access(r.db, func(s *memState) error {
		u, ok := s.users[id]
		if !ok {
			return common.ErrorNotFound
		}
		keep := func(dst **string, v *string) {
			if v != nil {
				c := *v
				*dst = &c
			}
		}
		keep(&u.Profile.Name, f.Name)
		keep(&u.Profile.Location, f.Location)
		keep(&u.Profile.AgeRange, f.AgeRange)
		keep(&u.Profile.InteractionPreference, f.InteractionPreference)
		keep(&u.Profile.OtherInteractionPreference, f.OtherInteractionPreference)
		s.users[id] = u
		return nil
	})
}

type memChallenges struct {
	db dbx.DBTX
	m  *memManager
}

func (r *memChallenges) FindByIDs(ctx context.Context, ids []int64) ([]models.Challenge, error) {
	if err := r.m.failure("challenges.FindByIDs"); err != nil {
		return nil, err
	}
	out := []models.Challenge{}
	err := access(r.db, func(s *memState) error {
		for _, id := range ids {
			if name, ok := s.challenges[id]; ok {
				out = append(out, models.Challenge{ID: id, Name: name})
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b models.Challenge) int { return int(a.ID - b.ID) })
	return out, err
}

func (r *memChallenges) List(ctx context.Context) ([]models.Challenge, error) {
	if err := r.m.failure("challenges.List"); err != nil {
		return nil, err
	}
	out := []models.Challenge{}
	err := access(r.db, func(s *memState) error {
		for _, id := range slices.Sorted(maps.Keys(s.challenges)) {
			out = append(out, models.Challenge{ID: id, Name: s.challenges[id]})
		}
		return nil
	})
	return out, err
}

type memMemberships struct {
	db dbx.DBTX
	m  *memManager
}

func (r *memMemberships) Replace(ctx context.Context, userID string, ids []int64) error {
	if err := r.m.failure("memberships.Replace"); err != nil {
		return err
	}
	return access(r.db, func(s *memState) error {
		set := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := s.challenges[id]; !ok {
				return common.ErrUnknownChallenge
			}
			set[id] = struct{}{}
		}
		s.members[userID] = set
		return nil
	})
}

func (r *memMemberships) ListByUser(ctx context.Context, userID string) ([]models.Challenge, error) {
	if err := r.m.failure("memberships.ListByUser"); err != nil {
		return nil, err
	}
	out := []models.Challenge{}
	err := access(r.db, func(s *memState) error {
		for _, id := range slices.Sorted(maps.Keys(s.members[userID])) {
			out = append(out, models.Challenge{ID: id, Name: s.challenges[id]})
		}
		return nil
	})
	return out, err
}
