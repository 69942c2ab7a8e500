package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"

	"inventory-system/internal/entities"
	"inventory-system/internal/filter"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/eventbus"
)

// memStore backs the fake repositories with maps; documents follow the
// cascade rule of the real schema.
type memStore struct {
	mu           sync.Mutex
	equipment    map[uint64]entities.Equipment
	documents    map[uint64]entities.Document
	calibrations map[uint64]entities.CalibrationRecord
	nextID       uint64
}

func newMemStore() *memStore {
	return &memStore{
		equipment:    map[uint64]entities.Equipment{},
		documents:    map[uint64]entities.Document{},
		calibrations: map[uint64]entities.CalibrationRecord{},
	}
}

func (m *memStore) id() uint64 {
	m.nextID++
	return m.nextID
}

type fakeEquipmentRepo struct{ m *memStore }

func (r fakeEquipmentRepo) List(_ context.Context, f filter.EquipmentFilter) ([]entities.Equipment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	list := make([]entities.Equipment, 0, len(r.m.equipment))
	for _, e := range r.m.equipment {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return f.Apply(list), nil
}

func (r fakeEquipmentRepo) FindByID(_ context.Context, _ pgx.Tx, id uint64) (*entities.Equipment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.m.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r fakeEquipmentRepo) Create(_ context.Context, _ pgx.Tx, e entities.Equipment) (uint64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e.ID = r.m.id()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.m.equipment[e.ID] = e
	return e.ID, nil
}

func (r fakeEquipmentRepo) Update(_ context.Context, _ pgx.Tx, id uint64, e entities.Equipment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cur, ok := r.m.equipment[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.ID, e.CreatedAt, e.UpdatedAt = id, cur.CreatedAt, time.Now()
	r.m.equipment[id] = e
	return nil
}

func (r fakeEquipmentRepo) Delete(_ context.Context, _ pgx.Tx, id uint64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.m.equipment, id)
	for docID, d := range r.m.documents {
		if d.EquipmentID.Valid && d.EquipmentID.Uint64 == id {
			delete(r.m.documents, docID)
		}
	}
	for recID, rec := range r.m.calibrations {
		if rec.EquipmentID == id {
			delete(r.m.calibrations, recID)
		}
	}
	return nil
}

func (r fakeEquipmentRepo) AdvanceLastCalibration(_ context.Context, _ pgx.Tx, id uint64, date time.Time) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.m.equipment[id]
	if !ok || (e.LastCalibration.Valid && !e.LastCalibration.Time.Before(date)) {
		return false, nil
	}
	e.LastCalibration = null.TimeFrom(date)
	r.m.equipment[id] = e
	return true, nil
}

type fakeDocumentRepo struct{ m *memStore }

func (r fakeDocumentRepo) withName(d entities.Document) entities.Document {
	d.EquipmentName = null.String{}
	if d.EquipmentID.Valid {
		if e, ok := r.m.equipment[d.EquipmentID.Uint64]; ok {
			d.EquipmentName = null.StringFrom(e.Name)
		}
	}
	return d
}

func (r fakeDocumentRepo) List(_ context.Context, _ pgx.Tx, equipmentID *uint64) ([]entities.Document, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	docs := make([]entities.Document, 0)
	for _, d := range r.m.documents {
		if equipmentID != nil && (!d.EquipmentID.Valid || d.EquipmentID.Uint64 != *equipmentID) {
			continue
		}
		docs = append(docs, r.withName(d))
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID > docs[j].ID })
	return docs, nil
}

func (r fakeDocumentRepo) FindByID(_ context.Context, id uint64) (*entities.Document, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.documents[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	d = r.withName(d)
	return &d, nil
}

func (r fakeDocumentRepo) Create(_ context.Context, d entities.Document) (uint64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d.ID = r.m.id()
	d.UploadedAt = time.Now()
	r.m.documents[d.ID] = d
	return d.ID, nil
}

func (r fakeDocumentRepo) Delete(_ context.Context, id uint64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.documents[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.m.documents, id)
	return nil
}

type fakeCalibrationRepo struct{ m *memStore }

func (r fakeCalibrationRepo) Create(_ context.Context, _ pgx.Tx, rec entities.CalibrationRecord) (uint64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rec.ID = r.m.id()
	rec.CreatedAt = time.Now()
	r.m.calibrations[rec.ID] = rec
	return rec.ID, nil
}

func (r fakeCalibrationRepo) ListByEquipment(_ context.Context, equipmentID uint64) ([]entities.CalibrationRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]entities.CalibrationRecord, 0)
	for _, rec := range r.m.calibrations {
		if rec.EquipmentID == equipmentID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CalibratedOn.After(out[j].CalibratedOn) })
	return out, nil
}

func (r fakeCalibrationRepo) Exists(_ context.Context, _ pgx.Tx, rec entities.CalibrationRecord) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.calibrations {
		if c.EquipmentID == rec.EquipmentID && c.CalibratedOn.Equal(rec.CalibratedOn) {
			return true, nil
		}
	}
	return false, nil
}

// fakeTxManager runs fn without a transaction; the fakes ignore tx.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

type fakeLoginAttempts struct {
	mu       sync.Mutex
	failures map[string]int64
	locked   map[string]bool
	err      error
}

func newFakeLoginAttempts() *fakeLoginAttempts {
	return &fakeLoginAttempts{failures: map[string]int64{}, locked: map[string]bool{}}
}

func (a *fakeLoginAttempts) IsLocked(_ context.Context, email string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.locked[email], a.err
}

func (a *fakeLoginAttempts) RegisterFailure(_ context.Context, email string, limit int, _ time.Duration) (int64, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return 0, false, a.err
	}
	a.failures[email]++
	n := a.failures[email]
	if n < int64(limit) {
		return n, false, nil
	}
	a.locked[email] = true
	delete(a.failures, email)
	return n, true, nil
}

func (a *fakeLoginAttempts) Reset(_ context.Context, email string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.failures, email)
	delete(a.locked, email)
	return a.err
}

func (a *fakeLoginAttempts) unlock(email string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.locked, email)
}

type fakeUserRepo struct {
	users map[uint64]entities.User
}

func (r fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r fakeUserRepo) FindByID(_ context.Context, id uint64) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r fakeUserRepo) Create(_ context.Context, u entities.User) (uint64, error) {
	u.ID = uint64(len(r.users) + 1)
	r.users[u.ID] = u
	return u.ID, nil
}

// entitiesDocument builds a manual without equipment expiring on date.
func entitiesDocument(name, date string) entities.Document {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return entities.Document{
		Type:           "manual",
		FilePath:       "manuals/" + name,
		OriginalName:   name,
		ExpirationDate: null.TimeFrom(t),
	}
}
