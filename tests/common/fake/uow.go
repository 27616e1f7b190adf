// Package fake provides an in-memory UnitOfWork for command-layer tests.
// It mimics the conditional-write contracts of the postgres repositories
// (decrement-if-sufficient, transition-from-pending, unique indexes) without
// transactional isolation, which command tests do not rely on.
package fake

import (
	"context"
	"time"

	"casaraiz-backend/internal/domain/offering"
	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/internal/domain/registration"
	"casaraiz-backend/internal/domain/waitlist"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/infra/db"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type InitPoints struct {
	InitPoint        string
	SandboxInitPoint string
}

type blockKey struct {
	HouseID  uuid.UUID
	UserID   uuid.UUID
	Category offering.Kind
}

type UoW struct {
	Offerings     map[uuid.UUID]*shared.OfferingSnapshot
	Houses        map[uuid.UUID]*shared.HouseSnapshot
	Registrations map[uuid.UUID]*shared.RegistrationSnapshot
	Payments      map[uuid.UUID]*shared.PaymentSnapshot
	Splits        map[uuid.UUID]*payment.Split
	Waitlist      []*shared.WaitlistEntrySnapshot
	Idempotency   map[string]*shared.IdempotencyRecord
	Jobs          []NotificationJob
	PaymentInit   map[uuid.UUID]InitPoints

	blocked map[blockKey]bool
}

func NewUoW() *UoW {
	return &UoW{
		Offerings:     make(map[uuid.UUID]*shared.OfferingSnapshot),
		Houses:        make(map[uuid.UUID]*shared.HouseSnapshot),
		Registrations: make(map[uuid.UUID]*shared.RegistrationSnapshot),
		Payments:      make(map[uuid.UUID]*shared.PaymentSnapshot),
		Splits:        make(map[uuid.UUID]*payment.Split),
		Idempotency:   make(map[string]*shared.IdempotencyRecord),
		PaymentInit:   make(map[uuid.UUID]InitPoints),
		blocked:       make(map[blockKey]bool),
	}
}

func (u *UoW) AddOffering(snap *shared.OfferingSnapshot) {
	u.Offerings[snap.ID] = snap
}

func (u *UoW) AddHouse(snap *shared.HouseSnapshot) {
	u.Houses[snap.ID] = snap
}

func (u *UoW) BlockUser(houseID, userID uuid.UUID, category offering.Kind) {
	u.blocked[blockKey{HouseID: houseID, UserID: userID, Category: category}] = true
}

func (u *UoW) AddWaitlistEntry(offeringID, userID uuid.UUID, joinedAt time.Time) uuid.UUID {
	entry := &shared.WaitlistEntrySnapshot{
		ID:         uuid.New(),
		OfferingID: offeringID,
		UserID:     userID,
		JoinedAt:   joinedAt,
	}
	u.Waitlist = append(u.Waitlist, entry)
	return entry.ID
}

// AddPendingPayment registers a pending payment snapshot the way the online
// checkout would have persisted it.
func (u *UoW) AddPendingPayment(snap *shared.PaymentSnapshot) {
	u.Payments[snap.ID] = snap
}

func (u *UoW) JobsByTopic(topic string) []NotificationJob {
	var out []NotificationJob
	for _, j := range u.Jobs {
		if j.Topic == topic {
			out = append(out, j)
		}
	}
	return out
}

// shared.UnitOfWork

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{u})
}

func (u *UoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UoW) CommandReads() shared.CommandReads {
	return &fakeReads{u}
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func duplicate(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindDuplicateKey)
}

// CommandReads

type fakeReads struct{ u *UoW }

func (r *fakeReads) OfferingByID(_ context.Context, id uuid.UUID) (*shared.OfferingSnapshot, error) {
	snap, ok := r.u.Offerings[id]
	if !ok {
		return nil, notFound("offering not found")
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) HouseByID(_ context.Context, id uuid.UUID) (*shared.HouseSnapshot, error) {
	snap, ok := r.u.Houses[id]
	if !ok {
		return nil, notFound("house not found")
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) IsUserBlocked(_ context.Context, houseID, userID uuid.UUID, category offering.Kind) (bool, error) {
	return r.u.blocked[blockKey{HouseID: houseID, UserID: userID, Category: category}], nil
}

func (r *fakeReads) ActiveRegistration(_ context.Context, offeringID, userID uuid.UUID) (*shared.RegistrationSnapshot, error) {
	for _, reg := range r.u.Registrations {
		if reg.OfferingID == offeringID && reg.UserID == userID &&
			(reg.Status == registration.StatusPending || reg.Status == registration.StatusConfirmed) {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeReads) ConfirmedUnits(_ context.Context, offeringID uuid.UUID) (int32, error) {
	var total int32
	for _, reg := range r.u.Registrations {
		if reg.OfferingID == offeringID && reg.Status == registration.StatusConfirmed {
			total += reg.Quantity
		}
	}
	return total, nil
}

func (r *fakeReads) IsWaitlisted(_ context.Context, offeringID, userID uuid.UUID) (bool, error) {
	for _, e := range r.u.Waitlist {
		if e.OfferingID == offeringID && e.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReads) PaymentByID(_ context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	snap, ok := r.u.Payments[id]
	if !ok {
		return nil, notFound("payment not found")
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) PaymentByExternalReference(_ context.Context, ref string) (*shared.PaymentSnapshot, error) {
	for _, p := range r.u.Payments {
		if p.ExternalReference == ref {
			cp := *p
			return &cp, nil
		}
	}
	return nil, notFound("payment not found")
}

func (r *fakeReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.u.Idempotency[key.String()+"/"+userID.String()]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	cp := *rec
	return &cp, nil
}

// Tx

type fakeTx struct{ u *UoW }

func (t *fakeTx) Offerings() shared.OfferingRepository         { return &fakeOfferings{t.u} }
func (t *fakeTx) Registrations() shared.RegistrationRepository { return &fakeRegistrations{t.u} }
func (t *fakeTx) Payments() shared.PaymentRepository           { return &fakePayments{t.u} }
func (t *fakeTx) Waitlist() shared.WaitlistRepository          { return &fakeWaitlist{t.u} }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository    { return &fakeIdempotency{t.u} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &fakeNotifications{t.u} }
func (t *fakeTx) Reads() shared.CommandReads                   { return &fakeReads{t.u} }
func (t *fakeTx) DB() db.DBTX                                  { return nil }

type fakeOfferings struct{ u *UoW }

func (f *fakeOfferings) FindForUpdate(_ context.Context, id uuid.UUID) (*shared.OfferingSnapshot, error) {
	snap, ok := f.u.Offerings[id]
	if !ok {
		return nil, notFound("offering not found")
	}
	cp := *snap
	return &cp, nil
}

func (f *fakeOfferings) DecrementStock(_ context.Context, id uuid.UUID, quantity int32) (bool, error) {
	snap, ok := f.u.Offerings[id]
	if !ok || snap.Stock == nil {
		return false, nil
	}
	if *snap.Stock < quantity {
		return false, nil
	}
	*snap.Stock -= quantity
	return true, nil
}

func (f *fakeOfferings) IncrementStock(_ context.Context, id uuid.UUID, quantity int32) error {
	snap, ok := f.u.Offerings[id]
	if !ok {
		return notFound("offering not found")
	}
	if snap.Stock != nil {
		*snap.Stock += quantity
	}
	return nil
}

type fakeRegistrations struct{ u *UoW }

func (f *fakeRegistrations) Create(_ context.Context, reg *registration.Registration) (uuid.UUID, error) {
	for _, existing := range f.u.Registrations {
		if existing.OfferingID == reg.OfferingID() && existing.UserID == reg.UserID() &&
			(existing.Status == registration.StatusPending || existing.Status == registration.StatusConfirmed) {
			return uuid.Nil, duplicate("active registration exists")
		}
	}
	snap := &shared.RegistrationSnapshot{
		ID:          reg.ID(),
		OfferingID:  reg.OfferingID(),
		HouseID:     reg.HouseID(),
		UserID:      reg.UserID(),
		Kind:        reg.Kind(),
		Quantity:    reg.Quantity(),
		Method:      reg.Method(),
		Status:      reg.Status(),
		AmountCents: reg.AmountCents(),
		CreatedAt:   reg.CreatedAt(),
	}
	f.u.Registrations[snap.ID] = snap
	return snap.ID, nil
}

func (f *fakeRegistrations) FindByID(_ context.Context, id uuid.UUID) (*shared.RegistrationSnapshot, error) {
	snap, ok := f.u.Registrations[id]
	if !ok {
		return nil, notFound("registration not found")
	}
	cp := *snap
	return &cp, nil
}

func (f *fakeRegistrations) ConfirmedUnits(_ context.Context, offeringID uuid.UUID) (int32, error) {
	return (&fakeReads{f.u}).ConfirmedUnits(context.Background(), offeringID)
}

func (f *fakeRegistrations) MarkCancelled(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	snap, ok := f.u.Registrations[id]
	if !ok || snap.Status != registration.StatusConfirmed {
		return false, nil
	}
	snap.Status = registration.StatusCancelled
	cancelled := at
	snap.CancelledAt = &cancelled
	return true, nil
}

type fakePayments struct{ u *UoW }

func (f *fakePayments) Create(_ context.Context, p *payment.Payment, initPoint, sandboxInitPoint string) error {
	if _, exists := f.u.Payments[p.ID()]; exists {
		return duplicate("payment exists")
	}
	f.u.Payments[p.ID()] = &shared.PaymentSnapshot{
		ID:                 p.ID(),
		HouseID:            p.HouseID(),
		UserID:             p.UserID(),
		OfferingID:         p.OfferingID(),
		Kind:               p.Kind(),
		Quantity:           p.Quantity(),
		AmountCents:        p.AmountCents(),
		OriginalPriceCents: p.OriginalPriceCents(),
		FeeCents:           p.FeeCents(),
		SubMethod:          p.SubMethod(),
		ExternalReference:  p.ExternalRef().String(),
		PreferenceID:       p.PreferenceID(),
		Status:             p.Status(),
		SplitApplied:       p.SplitApplied(),
		CommissionPct:      p.CommissionPct(),
		InitPoint:          initPoint,
		SandboxInitPoint:   sandboxInitPoint,
		CreatedAt:          p.CreatedAt(),
	}
	f.u.PaymentInit[p.ID()] = InitPoints{InitPoint: initPoint, SandboxInitPoint: sandboxInitPoint}
	return nil
}

func (f *fakePayments) FindForUpdate(_ context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	snap, ok := f.u.Payments[id]
	if !ok {
		return nil, notFound("payment not found")
	}
	cp := *snap
	return &cp, nil
}

func (f *fakePayments) TransitionFromPending(_ context.Context, id uuid.UUID, next payment.Status, externalPaymentID *string, registrationID *uuid.UUID) (bool, error) {
	snap, ok := f.u.Payments[id]
	if !ok || snap.Status != payment.StatusPending {
		return false, nil
	}
	snap.Status = next
	snap.ExternalPaymentID = externalPaymentID
	snap.RegistrationID = registrationID
	return true, nil
}

func (f *fakePayments) CreateSplit(_ context.Context, s *payment.Split) error {
	if _, exists := f.u.Splits[s.PaymentID()]; exists {
		return duplicate("split exists")
	}
	f.u.Splits[s.PaymentID()] = s
	return nil
}

func (f *fakePayments) UpdateSplitTransfer(_ context.Context, paymentID uuid.UUID, status payment.TransferStatus) (bool, error) {
	s, ok := f.u.Splits[paymentID]
	if !ok {
		return false, nil
	}
	switch status {
	case payment.TransferTransferred:
		s.MarkTransferred()
	case payment.TransferFailed:
		s.MarkTransferFailed()
	}
	return true, nil
}

type fakeWaitlist struct{ u *UoW }

func (f *fakeWaitlist) Create(_ context.Context, e *waitlist.Entry) error {
	for _, existing := range f.u.Waitlist {
		if existing.OfferingID == e.OfferingID() && existing.UserID == e.UserID() {
			return duplicate("waitlist entry exists")
		}
	}
	f.u.Waitlist = append(f.u.Waitlist, &shared.WaitlistEntrySnapshot{
		ID:         e.ID(),
		OfferingID: e.OfferingID(),
		UserID:     e.UserID(),
		JoinedAt:   e.JoinedAt(),
		NotifiedAt: e.NotifiedAt(),
	})
	return nil
}

func (f *fakeWaitlist) Delete(_ context.Context, offeringID, userID uuid.UUID) (bool, error) {
	for i, e := range f.u.Waitlist {
		if e.OfferingID == offeringID && e.UserID == userID {
			f.u.Waitlist = append(f.u.Waitlist[:i], f.u.Waitlist[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWaitlist) ClaimNextUnnotified(_ context.Context, offeringID uuid.UUID, at time.Time) (*shared.WaitlistEntrySnapshot, error) {
	var candidate *shared.WaitlistEntrySnapshot
	for _, e := range f.u.Waitlist {
		if e.OfferingID != offeringID || e.NotifiedAt != nil {
			continue
		}
		if candidate == nil || earlier(e, candidate) {
			candidate = e
		}
	}
	if candidate == nil {
		return nil, nil
	}
	notified := at
	candidate.NotifiedAt = &notified
	cp := *candidate
	return &cp, nil
}

func earlier(a, b *shared.WaitlistEntrySnapshot) bool {
	if a.JoinedAt.Equal(b.JoinedAt) {
		return a.UserID.String() < b.UserID.String()
	}
	return a.JoinedAt.Before(b.JoinedAt)
}

type fakeIdempotency struct{ u *UoW }

func (f *fakeIdempotency) TryInsert(_ context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	k := key.String() + "/" + userID.String()
	if _, exists := f.u.Idempotency[k]; exists {
		return duplicate("idempotency key exists")
	}
	f.u.Idempotency[k] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      "processing",
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (f *fakeIdempotency) UpdateStatusCompleted(_ context.Context, key, userID uuid.UUID, responseBodyHash string, resultPaymentID uuid.UUID) error {
	k := key.String() + "/" + userID.String()
	rec, ok := f.u.Idempotency[k]
	if !ok || rec.Status != "processing" {
		return infra.WrapRepoErr("idempotency record not processing", nil, infra.KindConflict)
	}
	rec.Status = "completed"
	id := resultPaymentID
	rec.ResultPaymentID = &id
	return nil
}

type fakeNotifications struct{ u *UoW }

func (f *fakeNotifications) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	f.u.Jobs = append(f.u.Jobs, NotificationJob{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}
