package usecase

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/service"
	"tripcollab/pkg/errors"
)

// In-memory repository fakes shared by the usecase tests.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.User, int64, error) {
	var users []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, int64(len(users)), nil
}

type fakeTripRepo struct {
	trips map[string]map[string]*entity.Trip // creatorID -> tripID -> trip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[string]map[string]*entity.Trip)}
}

func (r *fakeTripRepo) Create(ctx context.Context, trip *entity.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if r.trips[trip.CreatorID] == nil {
		r.trips[trip.CreatorID] = make(map[string]*entity.Trip)
	}
	r.trips[trip.CreatorID][trip.ID] = trip
	return nil
}

func (r *fakeTripRepo) GetByID(ctx context.Context, creatorID, tripID string) (*entity.Trip, error) {
	trip, ok := r.trips[creatorID][tripID]
	if !ok {
		return nil, errors.NotFound("Travel plan", nil)
	}
	return trip, nil
}

func (r *fakeTripRepo) Update(ctx context.Context, trip *entity.Trip) error {
	r.trips[trip.CreatorID][trip.ID] = trip
	return nil
}

func (r *fakeTripRepo) Delete(ctx context.Context, creatorID, tripID string) error {
	delete(r.trips[creatorID], tripID)
	return nil
}

func (r *fakeTripRepo) ListByCreator(ctx context.Context, creatorID string) ([]*entity.Trip, error) {
	var trips []*entity.Trip
	for _, t := range r.trips[creatorID] {
		trips = append(trips, t)
	}
	sort.Slice(trips, func(i, j int) bool { return trips[i].StartDate.Before(trips[j].StartDate) })
	return trips, nil
}

type fakeThreadRepo struct {
	threads  map[string]*entity.Thread
	messages map[string][]*entity.Message // threadID -> ordered messages
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{
		threads:  make(map[string]*entity.Thread),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *fakeThreadRepo) Create(ctx context.Context, thread *entity.Thread) error {
	if thread.ID == "" {
		thread.ID = entity.ThreadIDFor(thread.Participants[0], thread.Participants[1])
	}
	if thread.UnreadCount == nil {
		thread.UnreadCount = make(map[string]int)
	}
	r.threads[thread.ID] = thread
	return nil
}

func (r *fakeThreadRepo) GetByID(ctx context.Context, id string) (*entity.Thread, error) {
	thread, ok := r.threads[id]
	if !ok {
		return nil, errors.NotFound("Message thread", nil)
	}
	return thread, nil
}

func (r *fakeThreadRepo) Update(ctx context.Context, thread *entity.Thread) error {
	r.threads[thread.ID] = thread
	return nil
}

func (r *fakeThreadRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Thread, int64, error) {
	var threads []*entity.Thread
	for _, t := range r.threads {
		if t.HasParticipant(userID) {
			threads = append(threads, t)
		}
	}
	return threads, int64(len(threads)), nil
}

func (r *fakeThreadRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages[message.ThreadID] = append(r.messages[message.ThreadID], message)
	return nil
}

func (r *fakeThreadRepo) GetMessageByID(ctx context.Context, threadID, messageID string) (*entity.Message, error) {
	for _, m := range r.messages[threadID] {
		if m.ID == messageID {
			return m, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (r *fakeThreadRepo) UpdateMessage(ctx context.Context, threadID string, message *entity.Message) error {
	for i, m := range r.messages[threadID] {
		if m.ID == message.ID {
			r.messages[threadID][i] = message
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

func (r *fakeThreadRepo) ListMessages(ctx context.Context, threadID string, limit, offset int) ([]*entity.Message, int64, error) {
	msgs := r.messages[threadID]
	return msgs, int64(len(msgs)), nil
}

func (r *fakeThreadRepo) FindOfferMessage(ctx context.Context, threadID, offerID string) (*entity.Message, error) {
	for _, m := range r.messages[threadID] {
		if m.Type == entity.MessageTypeOffer && m.Offer != nil && m.Offer.OfferID == offerID {
			return m, nil
		}
	}
	return nil, errors.NotFound("Offer", nil)
}

func (r *fakeThreadRepo) MarkMessageRead(ctx context.Context, threadID, messageID, userID string) error {
	message, err := r.GetMessageByID(ctx, threadID, messageID)
	if err != nil {
		return err
	}
	for _, reader := range message.ReadBy {
		if reader == userID {
			return nil
		}
	}
	message.ReadBy = append(message.ReadBy, userID)
	message.Status = "read"
	return nil
}

// lastMessage returns the newest message in a thread, nil when empty.
func (r *fakeThreadRepo) lastMessage(threadID string) *entity.Message {
	msgs := r.messages[threadID]
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return order, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Order, int64, error) {
	var orders []*entity.Order
	for _, o := range r.orders {
		party := o.BrandID
		if role == entity.RoleCreator {
			party = o.CreatorID
		}
		if party != userID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		orders = append(orders, o)
	}
	return orders, int64(len(orders)), nil
}

type fakeTypingRepo struct {
	statuses map[string]*entity.TypingStatus // threadID_userID
}

func newFakeTypingRepo() *fakeTypingRepo {
	return &fakeTypingRepo{statuses: make(map[string]*entity.TypingStatus)}
}

func (r *fakeTypingRepo) Set(ctx context.Context, ts *entity.TypingStatus) error {
	r.statuses[ts.ThreadID+"_"+ts.UserID] = ts
	return nil
}

func (r *fakeTypingRepo) Clear(ctx context.Context, threadID, userID string) error {
	delete(r.statuses, threadID+"_"+userID)
	return nil
}

func (r *fakeTypingRepo) ListActive(ctx context.Context, threadID string) ([]*entity.TypingStatus, error) {
	now := time.Now()
	var active []*entity.TypingStatus
	for key, ts := range r.statuses {
		if ts.ThreadID != threadID {
			continue
		}
		if ts.Expired(now) {
			delete(r.statuses, key)
			continue
		}
		active = append(active, ts)
	}
	return active, nil
}

type fakeFileMetadataRepo struct {
	files map[string]*entity.FileMetadata
}

func newFakeFileMetadataRepo() *fakeFileMetadataRepo {
	return &fakeFileMetadataRepo{files: make(map[string]*entity.FileMetadata)}
}

func (r *fakeFileMetadataRepo) Create(ctx context.Context, metadata *entity.FileMetadata) error {
	if metadata.ID == "" {
		metadata.ID = uuid.New().String()
	}
	r.files[metadata.ID] = metadata
	return nil
}

func (r *fakeFileMetadataRepo) GetByID(ctx context.Context, id string) (*entity.FileMetadata, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, errors.NotFound("File metadata", nil)
	}
	return f, nil
}

func (r *fakeFileMetadataRepo) Delete(ctx context.Context, id string) error {
	delete(r.files, id)
	return nil
}

func (r *fakeFileMetadataRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.FileMetadata, error) {
	var out []*entity.FileMetadata
	for _, f := range r.files {
		if f.EntityType == entityType && f.EntityID == entityID {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeFileService struct {
	uploads int
	deleted []string
}

func (s *fakeFileService) UploadFile(ctx context.Context, file io.Reader, fileType, filename, folder string, isPublic bool) (*service.UploadResult, error) {
	s.uploads++
	return &service.UploadResult{
		URL:        "https://storage.googleapis.com/test-bucket/" + folder + "/" + filename,
		ObjectName: folder + "/" + filename,
		Size:       42,
	}, nil
}

func (s *fakeFileService) DeleteFile(ctx context.Context, fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

func (s *fakeFileService) GenerateSignedUploadURL(ctx context.Context, fileType, folder string) (string, error) {
	return "https://storage.googleapis.com/signed/" + folder, nil
}

func (s *fakeFileService) Close() error { return nil }

type fakePaymentService struct {
	createCalls int
	status      string
	paymentType string
}

func (s *fakePaymentService) CreatePayment(ctx context.Context, req service.PaymentGatewayRequest) (*service.PaymentGatewayResponse, error) {
	s.createCalls++
	return &service.PaymentGatewayResponse{
		Token:       "snap-token",
		RedirectURL: "https://checkout.example/" + req.OrderID,
		OrderID:     req.OrderID,
		Status:      "pending",
	}, nil
}

func (s *fakePaymentService) GetPaymentStatus(ctx context.Context, orderID string) (*service.PaymentGatewayResponse, error) {
	return &service.PaymentGatewayResponse{
		OrderID:     orderID,
		Status:      s.status,
		PaymentType: s.paymentType,
	}, nil
}

func (s *fakePaymentService) HandleCallback(ctx context.Context, notification map[string]interface{}) (*service.PaymentGatewayResponse, error) {
	orderID, _ := notification["order_id"].(string)
	transactionStatus, _ := notification["transaction_status"].(string)
	paymentType, _ := notification["payment_type"].(string)

	status := "pending"
	switch transactionStatus {
	case "settlement", "capture":
		status = "success"
	case "cancel", "deny", "expire":
		status = "failure"
	}

	return &service.PaymentGatewayResponse{
		OrderID:     orderID,
		Status:      status,
		PaymentType: paymentType,
	}, nil
}

// test users

func testCreator(id string) *entity.User {
	return &entity.User{
		ID:          id,
		Email:       id + "@example.com",
		DisplayName: "Creator " + id,
		Role:        entity.RoleCreator,
		Status:      "active",
	}
}

func testBrand(id string) *entity.User {
	return &entity.User{
		ID:          id,
		Email:       id + "@example.com",
		DisplayName: "Brand " + id,
		Role:        entity.RoleBrand,
		Status:      "active",
		CompanyName: "Brand Co",
	}
}
