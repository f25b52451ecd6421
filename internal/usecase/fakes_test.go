package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/repository"
	"effettobot/internal/domain/service"
	"effettobot/pkg/errors"
)

// The fakes mirror the Firestore adapters' observable behavior, including
// the conditional-transition conflicts, so the workflows are exercised
// against the same contract the real storage enforces.

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*entity.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*entity.Ticket)}
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *entity.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = uuid.New().String()
	ticket.Status = entity.TicketOpen
	ticket.CreatedAt = time.Now()
	copied := *ticket
	r.tickets[ticket.ChannelID] = &copied
	return nil
}

func (r *fakeTicketRepo) GetByChannel(ctx context.Context, channelID string) (*entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[channelID]
	if !ok {
		return nil, errors.NotFoundMsg("This is not a valid ticket channel!")
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) GetOpenByUser(ctx context.Context, userID string) (*entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ticket := range r.tickets {
		if ticket.UserID == userID && ticket.Status != entity.TicketClosed {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Open ticket", nil)
}

func (r *fakeTicketRepo) Transition(ctx context.Context, channelID string, tr repository.TicketTransition) (*entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[channelID]
	if !ok {
		return nil, errors.NotFoundMsg("This is not a valid ticket channel!")
	}

	allowed := false
	for _, from := range tr.From {
		if ticket.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errors.Conflict(wrongStateMessage(tr.To))
	}
	if tr.RequireUnclaimed && ticket.ClaimedBy != "" {
		return nil, errors.Conflict(fmt.Sprintf("This ticket is already claimed by <@%s>!", ticket.ClaimedBy))
	}

	ticket.Status = tr.To
	if tr.ClaimedBy != "" {
		ticket.ClaimedBy = tr.ClaimedBy
	}
	if tr.StampClosedAt {
		now := time.Now()
		ticket.ClosedAt = &now
	}

	copied := *ticket
	return &copied, nil
}

func wrongStateMessage(to entity.TicketStatus) string {
	switch to {
	case entity.TicketClaimed:
		return "This ticket is not open!"
	case entity.TicketClosed:
		return "This ticket is already closed!"
	default:
		return "This ticket is not closed!"
	}
}

type fakeProductRepo struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	listCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.ID = uuid.New().String()
	product.NameLower = strings.ToLower(product.Name)
	product.CreatedAt = time.Now()
	copied := *product
	r.products[product.NameLower] = &copied
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(name)
	if _, ok := r.products[key]; !ok {
		return errors.NotFound("Product", nil)
	}
	delete(r.products, key)
	return nil
}

func (r *fakeProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[strings.ToLower(name)]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++

	out := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		copied := *product
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameLower < out[j].NameLower })
	return out, nil
}

func (r *fakeProductRepo) Exists(ctx context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.products[strings.ToLower(name)]
	return ok, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*entity.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review.ID = uuid.New().String()
	review.Status = entity.ReviewPending
	review.CreatedAt = time.Now()
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) ListByStatus(ctx context.Context, status entity.ReviewStatus) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, review := range r.reviews {
		if review.Status == status {
			copied := *review
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) ListApprovedByProduct(ctx context.Context, productName string) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, review := range r.reviews {
		if review.Status == entity.ReviewApproved && strings.EqualFold(review.ProductName, productName) {
			copied := *review
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Decide(ctx context.Context, id string, decision entity.ReviewStatus, decidedBy string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	if review.Status != entity.ReviewPending {
		return nil, errors.Conflict("This review has already been decided!")
	}

	now := time.Now()
	review.Status = decision
	review.DecidedBy = decidedBy
	review.DecidedAt = &now

	copied := *review
	return &copied, nil
}

type fakeAuthRepo struct {
	mu    sync.Mutex
	users map[string]*entity.ReviewAuthorization
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[string]*entity.ReviewAuthorization)}
}

func (r *fakeAuthRepo) Upsert(ctx context.Context, auth *entity.ReviewAuthorization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	auth.CreatedAt = time.Now()
	copied := *auth
	r.users[auth.UserID] = &copied
	return nil
}

func (r *fakeAuthRepo) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	return nil
}

func (r *fakeAuthRepo) Exists(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[userID]
	return ok, nil
}

type fakeConfigRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{values: make(map[string]string)}
}

func (r *fakeConfigRepo) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *fakeConfigRepo) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[key], nil
}

func (r *fakeConfigRepo) GetAll(ctx context.Context) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

type sentMessage struct {
	ChannelID string
	Msg       service.OutboundMessage
}

type createdChannel struct {
	ID         string
	Name       string
	ParentID   string
	Overwrites []service.PermissionOverwrite
}

// fakePlatform records every outbound call and lets tests inject failures
// for individual operations.
type fakePlatform struct {
	mu sync.Mutex

	channels        []createdChannel
	sent            []sentMessage
	deletedChannels []string
	deletedMessages []string
	reactions       []string
	grantedRoles    []string
	revokedRoles    []string
	history         []service.HistoryMessage

	createChannelErr error
	sendErr          error
	fetchHistoryErr  error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{}
}

func (p *fakePlatform) CreateChannel(ctx context.Context, name, parentID string, overwrites []service.PermissionOverwrite) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createChannelErr != nil {
		return "", p.createChannelErr
	}
	id := fmt.Sprintf("chan-%d", len(p.channels)+1)
	p.channels = append(p.channels, createdChannel{ID: id, Name: name, ParentID: parentID, Overwrites: overwrites})
	return id, nil
}

func (p *fakePlatform) DeleteChannel(ctx context.Context, channelID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deletedChannels = append(p.deletedChannels, channelID)
	return nil
}

func (p *fakePlatform) Send(ctx context.Context, channelID string, msg service.OutboundMessage) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sendErr != nil {
		return "", p.sendErr
	}
	p.sent = append(p.sent, sentMessage{ChannelID: channelID, Msg: msg})
	return fmt.Sprintf("msg-%d", len(p.sent)), nil
}

func (p *fakePlatform) EditMessage(ctx context.Context, channelID, messageID string, msg service.OutboundMessage) error {
	return nil
}

func (p *fakePlatform) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deletedMessages = append(p.deletedMessages, messageID)
	return nil
}

func (p *fakePlatform) FetchHistory(ctx context.Context, channelID string, limit int) ([]service.HistoryMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fetchHistoryErr != nil {
		return nil, p.fetchHistoryErr
	}
	return p.history, nil
}

func (p *fakePlatform) React(ctx context.Context, channelID, messageID, emoji string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reactions = append(p.reactions, emoji)
	return nil
}

func (p *fakePlatform) GrantRole(ctx context.Context, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grantedRoles = append(p.grantedRoles, userID+":"+roleID)
	return nil
}

func (p *fakePlatform) RevokeRole(ctx context.Context, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revokedRoles = append(p.revokedRoles, userID+":"+roleID)
	return nil
}

func (p *fakePlatform) sentTo(channelID string) []sentMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []sentMessage
	for _, m := range p.sent {
		if m.ChannelID == channelID {
			out = append(out, m)
		}
	}
	return out
}
