package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"salespipe/internal/models"
	"salespipe/internal/scope"
	"salespipe/internal/stage"
)

type fakeStore struct {
	byID    map[int]*models.Opportunity
	nextID  int
	updates int
}

func newFakeStore(opps ...*models.Opportunity) *fakeStore {
	s := &fakeStore{byID: map[int]*models.Opportunity{}, nextID: 1}
	for _, o := range opps {
		cp := *o
		s.byID[o.ID] = &cp
		if o.ID >= s.nextID {
			s.nextID = o.ID + 1
		}
	}
	return s
}

func (s *fakeStore) Create(o *models.Opportunity) (int, error) {
	id := s.nextID
	s.nextID++
	cp := *o
	cp.ID = id
	s.byID[id] = &cp
	return id, nil
}

func (s *fakeStore) GetByID(id int) (*models.Opportunity, error) {
	o, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (s *fakeStore) Update(o *models.Opportunity) error {
	s.updates++
	cp := *o
	s.byID[o.ID] = &cp
	return nil
}

func (s *fakeStore) ListScoped(sc scope.Scope, limit, offset int) ([]*models.Opportunity, error) {
	var out []*models.Opportunity
	for _, o := range s.byID {
		if sc.Allows(o.OwnerID) {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeStore) Filter(sc scope.Scope, status, stageLabel, from, to string, limit, offset int) ([]*models.Opportunity, error) {
	return s.ListScoped(sc, limit, offset)
}

type failingSink struct{ calls int }

func (f *failingSink) Insert(a *models.Activity) error {
	f.calls++
	return errors.New("sink unavailable")
}

type recordingSink struct{ events []models.Activity }

func (r *recordingSink) Insert(a *models.Activity) error {
	r.events = append(r.events, *a)
	return nil
}

func testService(store *fakeStore, sink ActivitySink) *OpportunityService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := NewOpportunityService(store, sink, log)
	svc.now = func() time.Time { return testNow }
	return svc
}

func ownerScope(ids ...int) scope.Scope {
	return scope.Scope{Label: "individual", OwnerIDs: ids}
}

func TestServiceAdvancePersistsOnceAndEmits(t *testing.T) {
	store := newFakeStore(newOpenOpportunity())
	sink := &recordingSink{}
	svc := testService(store, sink)

	o, err := svc.Advance(1, ownerScope(7), "need confirmed", futureStep())
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if o.Stage != stage.Qualification {
		t.Errorf("stage = %s, want Qualification", o.Stage)
	}
	if store.updates != 1 {
		t.Errorf("updates = %d, want exactly one atomic write", store.updates)
	}
	if len(sink.events) != 1 || sink.events[0].OpportunityID != 1 {
		t.Errorf("activity event missing: %+v", sink.events)
	}

	persisted, _ := store.GetByID(1)
	if persisted.Evidence.Prospecting != "need confirmed" {
		t.Errorf("evidence not persisted: %+v", persisted.Evidence)
	}
}

func TestServiceActivityFailureIsSwallowed(t *testing.T) {
	store := newFakeStore(newOpenOpportunity())
	sink := &failingSink{}
	svc := testService(store, sink)

	if _, err := svc.MarkWon(1, ownerScope(7)); err != nil {
		t.Fatalf("MarkWon must not fail on a sink error: %v", err)
	}
	if sink.calls != 1 {
		t.Errorf("sink calls = %d, want 1", sink.calls)
	}
	persisted, _ := store.GetByID(1)
	if persisted.Status != models.StatusWon {
		t.Errorf("transition lost: status = %s", persisted.Status)
	}
}

func TestServiceScopeEnforced(t *testing.T) {
	store := newFakeStore(newOpenOpportunity()) // owned by 7
	svc := testService(store, nil)

	if _, err := svc.Advance(1, ownerScope(99), "evidence", futureStep()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if store.updates != 0 {
		t.Error("out-of-scope call reached the store")
	}
}

func TestServiceTerminalNoOpLeavesStoreUntouched(t *testing.T) {
	o := newOpenOpportunity()
	o.Stage = stage.ClosedWon
	o.Status = models.StatusWon
	store := newFakeStore(o)
	svc := testService(store, nil)

	got, err := svc.Advance(1, ownerScope(7), "evidence", futureStep())
	if !errors.Is(err, stage.ErrAlreadyTerminal) {
		t.Fatalf("err = %v, want ErrAlreadyTerminal", err)
	}
	if got == nil || got.Stage != stage.ClosedWon {
		t.Errorf("no-op must return the unchanged record: %+v", got)
	}
	if store.updates != 0 {
		t.Error("no-op wrote to the store")
	}
}

func TestServiceCreateOwnsLifecycleFields(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, nil)

	in := &models.Opportunity{
		Name:        "Beta deal",
		Amount:      decimal.NewFromInt(100),
		Currency:    "USD",
		OwnerID:     3,
		Stage:       stage.Negotiation, // caller input ignored
		Status:      models.StatusWon,
		Probability: 99,
	}
	created, err := svc.Create(in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Stage != stage.Prospecting || created.Status != models.StatusOpen {
		t.Errorf("created as %s/%s, want Prospecting/open", created.Stage, created.Status)
	}
	if created.Probability != stage.Prospecting.Probability() {
		t.Errorf("probability = %d", created.Probability)
	}
}
