package services

import (
	"context"
	"sort"
	"sync"

	"github.com/prizeroom/doorprize-backend/internal/models"
	"github.com/prizeroom/doorprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memStore is an in-memory stand-in for the MongoDB repositories. It enforces
// the same unique indexes (winners.contestantId, contestants sessionId+name)
// and its transaction runner restores a snapshot when the callback fails, so
// the services' rollback behavior can be observed.
type memStore struct {
	mu sync.Mutex

	sessions    []*models.Session
	contestants []*models.Contestant
	prizes      []*models.Prize
	draws       []*models.Draw
	winners     []*models.Winner
	organizers  []*models.Organizer
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) sessionRepo() *memSessionRepo       { return &memSessionRepo{s} }
func (s *memStore) contestantRepo() *memContestantRepo { return &memContestantRepo{s} }
func (s *memStore) prizeRepo() *memPrizeRepo           { return &memPrizeRepo{s} }
func (s *memStore) drawRepo() *memDrawRepo             { return &memDrawRepo{s} }
func (s *memStore) winnerRepo() *memWinnerRepo         { return &memWinnerRepo{s} }
func (s *memStore) organizerRepo() *memOrganizerRepo   { return &memOrganizerRepo{s} }

func (s *memStore) hasWinner(contestantID primitive.ObjectID) bool {
	for _, w := range s.winners {
		if w.ContestantID == contestantID {
			return true
		}
	}
	return false
}

// seed helpers

func (s *memStore) addSession(name string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := &models.Session{ID: primitive.NewObjectID(), Name: name}
	s.sessions = append(s.sessions, session)
	return session
}

func (s *memStore) addContestant(sessionID primitive.ObjectID, name string) *models.Contestant {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &models.Contestant{ID: primitive.NewObjectID(), SessionID: sessionID, Name: name}
	s.contestants = append(s.contestants, c)
	return c
}

func (s *memStore) addPrize(sessionID primitive.ObjectID, name string, quantity int) *models.Prize {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &models.Prize{ID: primitive.NewObjectID(), SessionID: sessionID, Name: name, Quantity: quantity}
	s.prizes = append(s.prizes, p)
	return p
}

// memTxRunner serializes transactions and rolls the store back to its
// pre-transaction snapshot when fn returns an error, mirroring the session
// transaction semantics of pkg/mongodb.Client.
type memTxRunner struct {
	store *memStore
	txMu  sync.Mutex
}

func newMemTxRunner(store *memStore) *memTxRunner {
	return &memTxRunner{store: store}
}

func (r *memTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.store.mu.Lock()
	snapshot := memStore{
		sessions:    append([]*models.Session(nil), r.store.sessions...),
		contestants: append([]*models.Contestant(nil), r.store.contestants...),
		prizes:      append([]*models.Prize(nil), r.store.prizes...),
		draws:       append([]*models.Draw(nil), r.store.draws...),
		winners:     append([]*models.Winner(nil), r.store.winners...),
		organizers:  append([]*models.Organizer(nil), r.store.organizers...),
	}
	r.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		r.store.mu.Lock()
		r.store.sessions = snapshot.sessions
		r.store.contestants = snapshot.contestants
		r.store.prizes = snapshot.prizes
		r.store.draws = snapshot.draws
		r.store.winners = snapshot.winners
		r.store.organizers = snapshot.organizers
		r.store.mu.Unlock()
		return err
	}
	return nil
}

type memSessionRepo struct{ store *memStore }

var _ repositories.SessionRepository = (*memSessionRepo)(nil)

func (r *memSessionRepo) Create(ctx context.Context, session *models.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	session.ID = primitive.NewObjectID()
	r.store.sessions = append(r.store.sessions, session)
	return nil
}

func (r *memSessionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sessions {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memSessionRepo) FindAll(ctx context.Context) ([]*models.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := append([]*models.Session(nil), r.store.sessions...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memSessionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.sessions[:0]
	for _, s := range r.store.sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	r.store.sessions = kept
	return nil
}

type memContestantRepo struct{ store *memStore }

var _ repositories.ContestantRepository = (*memContestantRepo)(nil)

func (r *memContestantRepo) Create(ctx context.Context, contestant *models.Contestant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.contestants {
		if c.SessionID == contestant.SessionID && c.Name == contestant.Name {
			return repositories.ErrDuplicateKey
		}
	}
	contestant.ID = primitive.NewObjectID()
	r.store.contestants = append(r.store.contestants, contestant)
	return nil
}

func (r *memContestantRepo) CreateMany(ctx context.Context, contestants []*models.Contestant) error {
	for _, c := range contestants {
		if err := r.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *memContestantRepo) FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Contestant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Contestant
	for _, c := range r.store.contestants {
		if c.SessionID == sessionID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memContestantRepo) FindEligible(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Contestant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Contestant
	for _, c := range r.store.contestants {
		if c.SessionID == sessionID && !r.store.hasWinner(c.ID) {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memContestantRepo) CountEligible(ctx context.Context, sessionID primitive.ObjectID) (int, error) {
	eligible, err := r.FindEligible(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(eligible), nil
}

func (r *memContestantRepo) CountBySession(ctx context.Context, sessionID primitive.ObjectID) (int, error) {
	all, err := r.FindBySession(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

func (r *memContestantRepo) DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.contestants[:0]
	for _, c := range r.store.contestants {
		if c.SessionID != sessionID {
			kept = append(kept, c)
		}
	}
	r.store.contestants = kept
	return nil
}

type memPrizeRepo struct{ store *memStore }

var _ repositories.PrizeRepository = (*memPrizeRepo)(nil)

func (r *memPrizeRepo) Create(ctx context.Context, prize *models.Prize) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prize.ID = primitive.NewObjectID()
	r.store.prizes = append(r.store.prizes, prize)
	return nil
}

func (r *memPrizeRepo) FindByID(ctx context.Context, sessionID, prizeID primitive.ObjectID) (*models.Prize, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.prizes {
		if p.ID == prizeID && p.SessionID == sessionID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memPrizeRepo) FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Prize, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Prize
	for _, p := range r.store.prizes {
		if p.SessionID == sessionID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memPrizeRepo) DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.prizes[:0]
	for _, p := range r.store.prizes {
		if p.SessionID != sessionID {
			kept = append(kept, p)
		}
	}
	r.store.prizes = kept
	return nil
}

type memDrawRepo struct{ store *memStore }

var _ repositories.DrawRepository = (*memDrawRepo)(nil)

func (r *memDrawRepo) Create(ctx context.Context, draw *models.Draw) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	draw.ID = primitive.NewObjectID()
	r.store.draws = append(r.store.draws, draw)
	return nil
}

func (r *memDrawRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, d := range r.store.draws {
		if d.ID == id {
			copied := *d
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memDrawRepo) FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Draw, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Draw
	for _, d := range r.store.draws {
		if d.SessionID == sessionID {
			copied := *d
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memDrawRepo) DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.draws[:0]
	for _, d := range r.store.draws {
		if d.SessionID != sessionID {
			kept = append(kept, d)
		}
	}
	r.store.draws = kept
	return nil
}

type memWinnerRepo struct{ store *memStore }

var _ repositories.WinnerRepository = (*memWinnerRepo)(nil)

func (r *memWinnerRepo) CreateMany(ctx context.Context, winners []*models.Winner) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	inBatch := make(map[primitive.ObjectID]bool, len(winners))
	for _, w := range winners {
		if r.store.hasWinner(w.ContestantID) || inBatch[w.ContestantID] {
			return repositories.ErrDuplicateKey
		}
		inBatch[w.ContestantID] = true
	}
	for _, w := range winners {
		w.ID = primitive.NewObjectID()
		r.store.winners = append(r.store.winners, w)
	}
	return nil
}

func (r *memWinnerRepo) FindByDraw(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Winner
	for _, w := range r.store.winners {
		if w.DrawID == drawID {
			copied := *w
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memWinnerRepo) FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Winner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Winner
	for _, w := range r.store.winners {
		if w.SessionID == sessionID {
			copied := *w
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memWinnerRepo) CountByPrize(ctx context.Context, prizeID primitive.ObjectID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, w := range r.store.winners {
		if w.PrizeID == prizeID {
			n++
		}
	}
	return n, nil
}

func (r *memWinnerRepo) DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.winners[:0]
	for _, w := range r.store.winners {
		if w.SessionID != sessionID {
			kept = append(kept, w)
		}
	}
	r.store.winners = kept
	return nil
}

type memOrganizerRepo struct{ store *memStore }

var _ repositories.OrganizerRepository = (*memOrganizerRepo)(nil)

func (r *memOrganizerRepo) Create(ctx context.Context, organizer *models.Organizer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.organizers {
		if o.Email == organizer.Email {
			return repositories.ErrDuplicateKey
		}
	}
	organizer.ID = primitive.NewObjectID()
	r.store.organizers = append(r.store.organizers, organizer)
	return nil
}

func (r *memOrganizerRepo) FindByEmail(ctx context.Context, email string) (*models.Organizer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.organizers {
		if o.Email == email {
			copied := *o
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memOrganizerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Organizer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.organizers {
		if o.ID == id {
			copied := *o
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// staleContestantRepo wraps a contestant repository but serves eligibility
// from a fixed snapshot, simulating a concurrent draw that read the pool
// before this one committed.
type staleContestantRepo struct {
	repositories.ContestantRepository
	snapshot []*models.Contestant
}

func (r *staleContestantRepo) FindEligible(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Contestant, error) {
	return r.snapshot, nil
}
