package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"ecom-store/internal/data/entity"

	"github.com/google/uuid"
)

// In-memory stand-ins for the pgx repositories, enough to drive the services.

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*entity.User
	for _, u := range r.users {
		if u.DeletedAt == nil {
			copied := *u
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (r *memUserRepo) CountAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

type memOTPRepo struct {
	mu         sync.Mutex
	challenges []*entity.OTPChallenge
}

func newMemOTPRepo() *memOTPRepo {
	return &memOTPRepo{}
}

func (r *memOTPRepo) Create(ctx context.Context, otp *entity.OTPChallenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := *otp
	r.challenges = append(r.challenges, &o)
	return nil
}

func (r *memOTPRepo) FindLatestByCode(ctx context.Context, userID uuid.UUID, code string) (*entity.OTPChallenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.OTPChallenge
	for _, o := range r.challenges {
		if o.UserID != userID || o.Code != code {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (r *memSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := *session
	r.sessions[session.Token.String()] = &s
	return nil
}

func (r *memSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil || time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *memSessionRepo) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (r *memSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, s := range r.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (r *memSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	return nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products []*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{}
}

func (r *memProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *product
	r.products = append(r.products, &p)
	return nil
}

func (r *memProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id && p.DeletedAt == nil {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) matches(p *entity.Product, nameQuery, category *string) bool {
	if p.DeletedAt != nil {
		return false
	}
	if nameQuery != nil && *nameQuery != "" &&
		!containsFold(p.Name, *nameQuery) {
		return false
	}
	if category != nil && *category != "" && string(p.Category) != *category {
		return false
	}
	return true
}

func (r *memProductRepo) FindAll(ctx context.Context, limit, offset int, nameQuery, category *string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	skipped := 0
	for _, p := range r.products {
		if !r.matches(p, nameQuery, category) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) >= limit {
			break
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memProductRepo) CountAll(ctx context.Context, nameQuery, category *string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if r.matches(p, nameQuery, category) {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == product.ID {
			copied := *product
			r.products[i] = &copied
			return nil
		}
	}
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, p := range r.products {
		if p.ID == id && p.DeletedAt == nil {
			p.DeletedAt = &now
		}
	}
	return nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders []*entity.Order
	items  []*entity.OrderItem
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{}
}

func (r *memOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	skipped := 0
	for _, o := range r.orders {
		if o.UserID != userID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) >= limit {
			break
		}
		copied := *o
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memOrderRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, o := range r.orders {
		if o.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memOrderRepo) FindItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.OrderItem
	for _, it := range r.items {
		if it.OrderID == orderID {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

// recordingDispatcher captures every OTP send for assertions.
type recordingDispatcher struct {
	mu    sync.Mutex
	sends []sentOTP
}

type sentOTP struct {
	Email string
	Code  string
}

func (d *recordingDispatcher) SendOTP(email, code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sends = append(d.sends, sentOTP{Email: email, Code: code})
}

func (d *recordingDispatcher) Sent() []sentOTP {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]sentOTP, len(d.sends))
	copy(out, d.sends)
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
