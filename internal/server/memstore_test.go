package server_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"liveboard/internal/model"
	"liveboard/internal/repository"
)

// memStore implements the repository interfaces in memory.
type memStore struct {
	mu      sync.Mutex
	users   map[int64]model.User
	columns []model.Column
	cards   map[int64]model.Card
	nextID  int64
	clock   time.Time
}

var (
	_ repository.UserRepositoryInterface  = (*memStore)(nil)
	_ repository.BoardRepositoryInterface = (*memStore)(nil)
	_ repository.CardRepositoryInterface  = (*memStore)(nil)
)

func newMemStore(columns ...string) *memStore {
	s := &memStore{
		users: make(map[int64]model.User),
		cards: make(map[int64]model.Card),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, title := range columns {
		s.nextID++
		s.columns = append(s.columns, model.Column{ID: s.nextID, Title: title, OrderIndex: i})
	}
	return s
}

// tick advances the fake clock by less than a second per write.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(250 * time.Millisecond)
	return s.clock
}

func (s *memStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = s.tick()
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memStore) Snapshot(_ context.Context) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := &model.Board{
		Columns: append([]model.Column{}, s.columns...),
		Cards:   make([]model.Card, 0, len(s.cards)),
	}
	for _, c := range s.cards {
		board.Cards = append(board.Cards, c)
	}
	sort.Slice(board.Cards, func(i, j int) bool {
		a, b := board.Cards[i], board.Cards[j]
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex < b.OrderIndex
		}
		return a.ID < b.ID
	})
	return board, nil
}

func (s *memStore) GetOwnerID(_ context.Context, id int64) (*int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}
	return card.OwnerID, nil
}

func (s *memStore) hasColumn(id int64) bool {
	for _, c := range s.columns {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *memStore) CreateAtEnd(_ context.Context, card *model.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasColumn(card.ColumnID) {
		return repository.ErrColumnNotFound
	}

	next := 0
	for _, c := range s.cards {
		if c.ColumnID == card.ColumnID && c.OrderIndex >= next {
			next = c.OrderIndex + 1
		}
	}

	s.nextID++
	now := s.tick()
	card.ID = s.nextID
	card.OrderIndex = next
	card.CreatedAt = now
	card.UpdatedAt = now
	s.cards[card.ID] = *card
	return nil
}

func (s *memStore) Update(_ context.Context, id int64, apply func(card *model.Card) error) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}
	if err := apply(&card); err != nil {
		return nil, err
	}
	if !s.hasColumn(card.ColumnID) {
		return nil, repository.ErrColumnNotFound
	}
	card.UpdatedAt = s.tick()
	s.cards[id] = card
	return &card, nil
}

func (s *memStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[id]; !ok {
		return false, nil
	}
	delete(s.cards, id)
	return true, nil
}
