package service

import (
	"context"
	"sync"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
)

// ---------------------------------------------------------------------------
// In-memory stub storage. The conn argument is ignored: every stub shares
// the same maps, which is what a single logical database looks like.
// ---------------------------------------------------------------------------

type stubStore struct {
	mu      sync.Mutex
	users   map[string]domain.User
	tokens  map[string]*domain.Token
	entries []domain.DiaryEntry
	nextID  int64

	err error // if set, every repository call returns it
}

func newStubStore() *stubStore {
	return &stubStore{
		users:  make(map[string]domain.User),
		tokens: make(map[string]*domain.Token),
	}
}

func (s *stubStore) Users(dbx.DBTX) ports.UserRepository     { return stubUsers{s} }
func (s *stubStore) Tokens(dbx.DBTX) ports.TokenRepository   { return stubTokens{s} }
func (s *stubStore) Entries(dbx.DBTX) ports.EntryRepository { return stubEntries{s} }

type stubUsers struct{ s *stubStore }

func (r stubUsers) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.users[u.Username]; ok {
		return domain.ErrUserExists
	}
	r.s.users[u.Username] = *u
	return nil
}

func (r stubUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	u, ok := r.s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

type stubTokens struct{ s *stubStore }

func (r stubTokens) Create(_ context.Context, t *domain.Token) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	clone := *t
	r.s.tokens[t.Value] = &clone
	return nil
}

func (r stubTokens) FindActive(_ context.Context, token string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return "", r.s.err
	}
	t, ok := r.s.tokens[token]
	if !ok || t.Expired {
		return "", domain.ErrTokenNotFoundOrExpired
	}
	return t.Username, nil
}

func (r stubTokens) Expire(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	t, ok := r.s.tokens[token]
	if !ok || t.Expired {
		return domain.ErrTokenNotFoundOrExpired
	}
	t.Expired = true
	return nil
}

type stubEntries struct{ s *stubStore }

func (r stubEntries) Create(_ context.Context, e *domain.DiaryEntry) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return 0, r.s.err
	}
	r.s.nextID++
	clone := *e
	clone.ID = r.s.nextID
	r.s.entries = append(r.s.entries, clone)
	return clone.ID, nil
}

func (r stubEntries) FindByID(_ context.Context, id int64) (*domain.DiaryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, e := range r.s.entries {
		if e.ID == id {
			clone := e
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFoundOrForbidden
}

func (r stubEntries) ListPublic(context.Context) ([]domain.DiaryEntry, error) {
	return r.filter(func(e domain.DiaryEntry) bool { return e.Public })
}

func (r stubEntries) ListByAuthor(_ context.Context, author string) ([]domain.DiaryEntry, error) {
	return r.filter(func(e domain.DiaryEntry) bool { return e.Author == author })
}

func (r stubEntries) filter(keep func(domain.DiaryEntry) bool) ([]domain.DiaryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := []domain.DiaryEntry{}
	for _, e := range r.s.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r stubEntries) SetVisibility(_ context.Context, id int64, author string, public bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	for i := range r.s.entries {
		if r.s.entries[i].ID == id && r.s.entries[i].Author == author {
			r.s.entries[i].Public = public
			return nil
		}
	}
	return domain.ErrNotFoundOrForbidden
}

func (r stubEntries) Delete(_ context.Context, id int64, author string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	for i, e := range r.s.entries {
		if e.ID == id && e.Author == author {
			r.s.entries = append(r.s.entries[:i], r.s.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFoundOrForbidden
}

// ---------------------------------------------------------------------------
// Audit and cache stubs
// ---------------------------------------------------------------------------

type stubAudit struct {
	events []domain.AuditEvent
	err    error
}

func (a *stubAudit) Record(_ context.Context, e domain.AuditEvent) error {
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, e)
	return nil
}

func (a *stubAudit) actions() []domain.AuditAction {
	out := make([]domain.AuditAction, len(a.events))
	for i, e := range a.events {
		out[i] = e.Action
	}
	return out
}

type stubFeedCache struct {
	gen       int64
	snapshots map[int64][]domain.DiaryEntry
	genErr    error
	bumpErr   error
	dropErr   error
	gets      int
	dropped   []int64
}

func newStubFeedCache() *stubFeedCache {
	return &stubFeedCache{snapshots: make(map[int64][]domain.DiaryEntry)}
}

func (c *stubFeedCache) Generation(context.Context) (int64, error) { return c.gen, c.genErr }

func (c *stubFeedCache) Get(_ context.Context, gen int64) ([]domain.DiaryEntry, bool, error) {
	c.gets++
	e, ok := c.snapshots[gen]
	return e, ok, nil
}

func (c *stubFeedCache) Put(_ context.Context, gen int64, entries []domain.DiaryEntry) error {
	c.snapshots[gen] = entries
	return nil
}

func (c *stubFeedCache) Bump(context.Context) error {
	if c.bumpErr != nil {
		return c.bumpErr
	}
	c.gen++
	return nil
}

func (c *stubFeedCache) Drop(_ context.Context, gen int64) error {
	if c.dropErr != nil {
		return c.dropErr
	}
	delete(c.snapshots, gen)
	c.dropped = append(c.dropped, gen)
	return nil
}
