// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-spend-keeper/models"
)

// Hand-written stubs for the repository and adapter boundaries. Behaviour is
// injected per test through function fields; an unset field means the test
// does not expect that call and a nil dereference flags the violation.

type stubCacheRepo struct {
	upsertFn  func(ctx context.Context, record models.CacheRecord) (models.CacheRecord, error)
	confirmFn func(ctx context.Context, recordID int64, sheetRef string, versionToken string) error
	listFn    func(ctx context.Context, userID string, query models.RecordQuery) ([]models.CacheRecord, int, error)
	replaceFn func(ctx context.Context, userID string, records []models.CacheRecord) error
}

func (s *stubCacheRepo) UpsertWrite(ctx context.Context, record models.CacheRecord) (models.CacheRecord, error) {
	return s.upsertFn(ctx, record)
}

func (s *stubCacheRepo) Confirm(ctx context.Context, recordID int64, sheetRef string, versionToken string) error {
	return s.confirmFn(ctx, recordID, sheetRef, versionToken)
}

func (s *stubCacheRepo) List(ctx context.Context, userID string, query models.RecordQuery) ([]models.CacheRecord, int, error) {
	return s.listFn(ctx, userID, query)
}

func (s *stubCacheRepo) ReplaceAll(ctx context.Context, userID string, records []models.CacheRecord) error {
	return s.replaceFn(ctx, userID, records)
}

type stubSheetStore struct {
	readAllFn   func(ctx context.Context, sheetID string) ([]models.SheetRow, error)
	appendFn    func(ctx context.Context, sheetID string, row models.SheetRow) (models.SheetRow, error)
	updateFn    func(ctx context.Context, sheetID string, row models.SheetRow) (models.SheetRow, error)
	provisionFn func(ctx context.Context, userID string) (models.User, error)
}

func (s *stubSheetStore) ReadAll(ctx context.Context, sheetID string) ([]models.SheetRow, error) {
	return s.readAllFn(ctx, sheetID)
}

func (s *stubSheetStore) Append(ctx context.Context, sheetID string, row models.SheetRow) (models.SheetRow, error) {
	return s.appendFn(ctx, sheetID, row)
}

func (s *stubSheetStore) Update(ctx context.Context, sheetID string, row models.SheetRow) (models.SheetRow, error) {
	return s.updateFn(ctx, sheetID, row)
}

func (s *stubSheetStore) Provision(ctx context.Context, userID string) (models.User, error) {
	return s.provisionFn(ctx, userID)
}

type stubUserRepo struct {
	createFn func(ctx context.Context, user models.User) (models.User, error)
	findFn   func(ctx context.Context, userID string) (models.User, error)
	listFn   func(ctx context.Context) ([]models.User, error)
}

func (s *stubUserRepo) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return s.findFn(ctx, userID)
}

func (s *stubUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}

type stubServerAdapter struct {
	token string

	healthFn  func(ctx context.Context) error
	submitFn  func(ctx context.Context, write models.QueuedWrite) (models.CacheRecord, error)
	recordsFn func(ctx context.Context, query models.RecordQuery) (models.RecordsResponse, error)
	hydrateFn func(ctx context.Context) error
}

func (s *stubServerAdapter) SetToken(token string) { s.token = token }
func (s *stubServerAdapter) Token() string         { return s.token }

func (s *stubServerAdapter) Health(ctx context.Context) error { return s.healthFn(ctx) }

func (s *stubServerAdapter) SubmitWrite(ctx context.Context, write models.QueuedWrite) (models.CacheRecord, error) {
	return s.submitFn(ctx, write)
}

func (s *stubServerAdapter) GetRecords(ctx context.Context, query models.RecordQuery) (models.RecordsResponse, error) {
	return s.recordsFn(ctx, query)
}

func (s *stubServerAdapter) RequestHydration(ctx context.Context) error {
	return s.hydrateFn(ctx)
}

// stubMonitor is a settable two-state monitor. MarkOffline calls are counted
// so tests can assert the retryable path downgraded the link belief.
type stubMonitor struct {
	mu            sync.Mutex
	online        bool
	markedOffline int
	onOnline      func()
}

func (m *stubMonitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *stubMonitor) MarkOffline() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online = false
	m.markedOffline++
}

func (m *stubMonitor) setOnline(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online = v
}

func (m *stubMonitor) offlineCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.markedOffline
}

func (m *stubMonitor) Check(ctx context.Context) bool { return m.Online() }

func (m *stubMonitor) OnOnline(fn func()) { m.onOnline = fn }

func (m *stubMonitor) Start(ctx context.Context, probeInterval time.Duration) {}
func (m *stubMonitor) Stop()                                                  {}

// memQueueRepo is an in-memory QueueRepository preserving enqueue order.
// Error fields inject failures for the corresponding operation.
type memQueueRepo struct {
	mu      sync.Mutex
	writes  []models.QueuedWrite
	removed []string

	enqueueErr error
	listErr    error
	removeErr  error
	incErr     error
	countErr   error
}

func (q *memQueueRepo) Enqueue(ctx context.Context, write models.QueuedWrite) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.writes = append(q.writes, write)
	return nil
}

func (q *memQueueRepo) ListPending(ctx context.Context) ([]models.QueuedWrite, error) {
	if q.listErr != nil {
		return nil, q.listErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.QueuedWrite, len(q.writes))
	copy(out, q.writes)
	return out, nil
}

func (q *memQueueRepo) Remove(ctx context.Context, localID string) error {
	if q.removeErr != nil {
		return q.removeErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, w := range q.writes {
		if w.LocalID == localID {
			q.writes = append(q.writes[:i], q.writes[i+1:]...)
			q.removed = append(q.removed, localID)
			return nil
		}
	}
	return nil
}

func (q *memQueueRepo) IncrementAttempt(ctx context.Context, localID string) error {
	if q.incErr != nil {
		return q.incErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.writes {
		if q.writes[i].LocalID == localID {
			q.writes[i].AttemptCount++
		}
	}
	return nil
}

func (q *memQueueRepo) Count(ctx context.Context) (int, error) {
	if q.countErr != nil {
		return 0, q.countErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.writes), nil
}

func (q *memQueueRepo) pendingIDs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := make([]string, 0, len(q.writes))
	for _, w := range q.writes {
		ids = append(ids, w.LocalID)
	}
	return ids
}
