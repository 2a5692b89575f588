package auth

import (
	"sort"
	"time"
)

// Operator is a user allowed to review logged messages.
type Operator struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	GrantedAt time.Time `json:"granted_at"`
}

type Repository interface {
	LoadAll() ([]Operator, error)
	Upsert(op Operator) error
	Remove(id int64) error
}

// Service answers "may this user drive the viewer" questions. The
// allowlist is preloaded from the repository and merged with IDs seeded
// from the environment.
type Service struct {
	repo      Repository
	operators map[int64]Operator
}

func NewWithRepo(repo Repository, seed []int64) (*Service, error) {
	s := &Service{repo: repo, operators: make(map[int64]Operator)}
	if repo != nil {
		ops, err := repo.LoadAll()
		if err == nil {
			for _, op := range ops {
				s.operators[op.ID] = op
			}
		}
	}
	for _, id := range seed {
		if _, ok := s.operators[id]; !ok {
			s.operators[id] = Operator{ID: id}
		}
	}
	return s, nil
}

func (s *Service) IsOperator(id int64) bool {
	_, ok := s.operators[id]
	return ok
}

func (s *Service) Grant(op Operator) error {
	if op.GrantedAt.IsZero() {
		op.GrantedAt = time.Now().UTC()
	}
	s.operators[op.ID] = op
	if s.repo != nil {
		return s.repo.Upsert(op)
	}
	return nil
}

func (s *Service) Revoke(id int64) error {
	delete(s.operators, id)
	if s.repo != nil {
		return s.repo.Remove(id)
	}
	return nil
}

func (s *Service) List() []Operator {
	out := make([]Operator, 0, len(s.operators))
	for _, op := range s.operators {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
