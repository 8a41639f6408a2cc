package test

import (
	"context"
	"time"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/pkg/ids"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SettingsRepositoryStub keeps engine settings in-memory.
type SettingsRepositoryStub struct {
	Operator *int64
	Values   map[string]string
	Err      error
}

// NewSettingsRepositoryStub constructs stub with initialized map.
func NewSettingsRepositoryStub() *SettingsRepositoryStub {
	return &SettingsRepositoryStub{Values: make(map[string]string)}
}

func (s *SettingsRepositoryStub) OperatorID(ctx context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	if s.Operator == nil {
		return 0, domainErrors.ErrNotInitialized
	}
	return *s.Operator, nil
}

func (s *SettingsRepositoryStub) SetOperatorID(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Operator != nil {
		return domainErrors.ErrAlreadyInitialized
	}
	s.Operator = &id
	return nil
}

func (s *SettingsRepositoryStub) Get(ctx context.Context, key string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if v, ok := s.Values[key]; ok {
		return v, nil
	}
	return "", domainErrors.ErrNotFound
}

func (s *SettingsRepositoryStub) Set(ctx context.Context, key, value string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Values[key] = value
	return nil
}

// ResourceRepositoryStub keeps the resource catalog in-memory.
type ResourceRepositoryStub struct {
	Resources map[string]*model.Resource
	Order     []string
	Next      uint64
	Err       error
}

// NewResourceRepositoryStub constructs stub with initialized map.
func NewResourceRepositoryStub() *ResourceRepositoryStub {
	return &ResourceRepositoryStub{Resources: make(map[string]*model.Resource)}
}

func (s *ResourceRepositoryStub) Create(ctx context.Context, res model.Resource) (*model.Resource, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.Next++
	res.ID = ids.New(s.Next)
	res.CreatedAt = time.Now()
	stored := res
	s.Resources[res.ID] = &stored
	s.Order = append(s.Order, res.ID)
	return &stored, nil
}

func (s *ResourceRepositoryStub) Update(ctx context.Context, res model.Resource) error {
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.Resources[res.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	res.Active = existing.Active
	res.CreatedAt = existing.CreatedAt
	*existing = res
	return nil
}

func (s *ResourceRepositoryStub) Remove(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Resources[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Resources, id)
	return nil
}

func (s *ResourceRepositoryStub) SetActive(ctx context.Context, id string, active bool) error {
	if s.Err != nil {
		return s.Err
	}
	res, ok := s.Resources[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	res.Active = active
	return nil
}

func (s *ResourceRepositoryStub) Get(ctx context.Context, id string) (*model.Resource, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if res, ok := s.Resources[id]; ok {
		return res, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ResourceRepositoryStub) List(ctx context.Context) ([]model.Resource, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.Resource, 0, len(s.Resources))
	for _, id := range s.Order {
		if res, ok := s.Resources[id]; ok {
			result = append(result, *res)
		}
	}
	return result, nil
}

func (s *ResourceRepositoryStub) Count(ctx context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.Resources)), nil
}

func (s *ResourceRepositoryStub) Exists(ctx context.Context, id string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	res, ok := s.Resources[id]
	return ok && res.Active, nil
}

// BalanceRepositoryStub keeps user balances in-memory.
type BalanceRepositoryStub struct {
	Balances map[int64]int64
	Err      error
}

// NewBalanceRepositoryStub constructs stub with initialized map.
func NewBalanceRepositoryStub() *BalanceRepositoryStub {
	return &BalanceRepositoryStub{Balances: make(map[int64]int64)}
}

func (s *BalanceRepositoryStub) Get(ctx context.Context, userID int64) (*model.Balance, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &model.Balance{UserID: userID, Current: s.Balances[userID]}, nil
}

func (s *BalanceRepositoryStub) HasSufficient(ctx context.Context, userID int64, amount int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	return s.Balances[userID] >= amount, nil
}

func (s *BalanceRepositoryStub) Deposit(ctx context.Context, userID int64, amount int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Balances[userID] += amount
	return nil
}

func (s *BalanceRepositoryStub) Withdraw(ctx context.Context, userID int64, amount int64) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Balances[userID] < amount {
		return domainErrors.ErrInsufficientBalance
	}
	s.Balances[userID] -= amount
	return nil
}

// TreasuryRepositoryStub keeps the platform ledger in-memory.
type TreasuryRepositoryStub struct {
	Ledger model.Treasury
	Err    error
}

func (s *TreasuryRepositoryStub) Get(ctx context.Context) (*model.Treasury, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	ledger := s.Ledger
	return &ledger, nil
}

func (s *TreasuryRepositoryStub) Withdraw(ctx context.Context, amount int64) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Ledger.Balance < amount {
		return domainErrors.ErrInsufficientBalance
	}
	s.Ledger.Balance -= amount
	s.Ledger.TotalWithdrawn += amount
	return nil
}

// Credit mirrors the treasury credit issued by order completion.
func (s *TreasuryRepositoryStub) Credit(amount int64) {
	s.Ledger.Balance += amount
	s.Ledger.TotalReceived += amount
}

// ReviewRepositoryStub keeps reviews in-memory keyed by resource and user.
type ReviewRepositoryStub struct {
	Reviews map[string]map[int64]*model.Review
	Next    int64
	Err     error
}

// NewReviewRepositoryStub constructs stub with initialized map.
func NewReviewRepositoryStub() *ReviewRepositoryStub {
	return &ReviewRepositoryStub{Reviews: make(map[string]map[int64]*model.Review), Next: 1}
}

func (s *ReviewRepositoryStub) Upsert(ctx context.Context, review model.Review) (*model.Review, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	byUser, ok := s.Reviews[review.ResourceID]
	if !ok {
		byUser = make(map[int64]*model.Review)
		s.Reviews[review.ResourceID] = byUser
	}
	if existing, ok := byUser[review.UserID]; ok {
		review.ID = existing.ID
		review.CreatedAt = existing.CreatedAt
	} else {
		review.ID = s.Next
		review.CreatedAt = time.Now()
		s.Next++
	}
	stored := review
	byUser[review.UserID] = &stored
	return &stored, nil
}

func (s *ReviewRepositoryStub) ListByResource(ctx context.Context, resourceID string) ([]model.Review, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Review
	for _, review := range s.Reviews[resourceID] {
		result = append(result, *review)
	}
	return result, nil
}

func (s *ReviewRepositoryStub) Stats(ctx context.Context, resourceID string) (*model.RatingStats, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stats := &model.RatingStats{Min: 5, Max: 1}
	var total int
	for _, review := range s.Reviews[resourceID] {
		stats.Count++
		total += review.Rating
		if review.Rating < stats.Min {
			stats.Min = review.Rating
		}
		if review.Rating > stats.Max {
			stats.Max = review.Rating
		}
	}
	if stats.Count > 0 {
		avg := total / int(stats.Count)
		stats.Average = &avg
	}
	return stats, nil
}

func (s *ReviewRepositoryStub) RemoveByResource(ctx context.Context, resourceID string) error {
	if s.Err != nil {
		return s.Err
	}
	delete(s.Reviews, resourceID)
	return nil
}
