package memory

import (
	"context"
	"errors"
	"sync"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/animals"
	"pet-adoption-hub/internal/domain/divulgations"
	"pet-adoption-hub/internal/domain/donations"
	"pet-adoption-hub/internal/domain/rewards"
	"pet-adoption-hub/internal/domain/volunteers"
	"pet-adoption-hub/internal/platform/txn"
)

var (
	errIDRequired    = errors.New("id required")
	errAlreadyExists = errors.New("already exists")
)

type state struct {
	animals      map[string]animals.Animal
	requests     map[string]adoptions.Request
	users        map[string]rewards.User
	achievements map[rewards.AchievementCode]rewards.Achievement
	earned       map[string]map[rewards.AchievementCode]rewards.UserAchievement
	logins       []rewards.LoginRecord
	donations    map[string]donations.Donation
	applications map[string]volunteers.Application
	divulgations map[string]divulgations.Divulgation
}

func newState() *state {
	return &state{
		animals:      make(map[string]animals.Animal),
		requests:     make(map[string]adoptions.Request),
		users:        make(map[string]rewards.User),
		achievements: make(map[rewards.AchievementCode]rewards.Achievement),
		earned:       make(map[string]map[rewards.AchievementCode]rewards.UserAchievement),
		donations:    make(map[string]donations.Donation),
		applications: make(map[string]volunteers.Application),
		divulgations: make(map[string]divulgations.Divulgation),
	}
}

// clone copia los mapas. Los valores se reemplazan enteros, nunca se mutan en
// sitio, así que alcanza con una copia superficial salvo Answers.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.animals {
		c.animals[k] = v
	}
	for k, v := range s.requests {
		v.Answers = copyAnswers(v.Answers)
		c.requests[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.achievements {
		c.achievements[k] = v
	}
	for uid, m := range s.earned {
		cm := make(map[rewards.AchievementCode]rewards.UserAchievement, len(m))
		for k, v := range m {
			cm[k] = v
		}
		c.earned[uid] = cm
	}
	c.logins = append([]rewards.LoginRecord(nil), s.logins...)
	for k, v := range s.donations {
		c.donations[k] = v
	}
	for k, v := range s.applications {
		c.applications[k] = v
	}
	for k, v := range s.divulgations {
		c.divulgations[k] = v
	}
	return c
}

// Store es el almacenamiento in-memory (modo dev y tests).
//
// Las transacciones se serializan con un único lock y trabajan sobre una copia
// del estado: si fn falla o el contexto se cancela, la copia se descarta.
type Store struct {
	mu sync.RWMutex
	st *state
}

func NewStore() *Store {
	st := newState()
	for _, a := range rewards.DefaultCatalog() {
		st.achievements[a.Code] = a
	}
	return &Store{st: st}
}

func (s *Store) withTx(ctx context.Context, fn func(tx *txRepo) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.st.clone()
	if err := fn(&txRepo{st: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.st = work
	return nil
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

type manager[T any] struct {
	s    *Store
	view func(tx *txRepo) T
}

func (m manager[T]) WithinTx(ctx context.Context, fn func(ctx context.Context, tx T) error) error {
	return m.s.withTx(ctx, func(tx *txRepo) error {
		return fn(ctx, m.view(tx))
	})
}

func AdoptionsTx(s *Store) txn.Manager[adoptions.Tx] {
	return manager[adoptions.Tx]{s: s, view: func(tx *txRepo) adoptions.Tx { return tx }}
}

func RewardsTx(s *Store) txn.Manager[rewards.Store] {
	return manager[rewards.Store]{s: s, view: func(tx *txRepo) rewards.Store { return tx }}
}

func DonationsTx(s *Store) txn.Manager[donations.Tx] {
	return manager[donations.Tx]{s: s, view: func(tx *txRepo) donations.Tx { return tx }}
}

func VolunteersTx(s *Store) txn.Manager[volunteers.Tx] {
	return manager[volunteers.Tx]{s: s, view: func(tx *txRepo) volunteers.Tx { return tx }}
}

func DivulgationsTx(s *Store) txn.Manager[divulgations.Tx] {
	return manager[divulgations.Tx]{s: s, view: func(tx *txRepo) divulgations.Tx { return tx }}
}

func copyAnswers(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
