package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/kishorefa/Sainxt-platform-backend/internal/config"
	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/service"
	"github.com/kishorefa/Sainxt-platform-backend/internal/token"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:       "test-secret",
		SessionTokenTTL: 24 * time.Hour,
		ResetTokenTTL:   15 * time.Minute,
		ResetLinkBase:   "http://localhost:3000/auth/reset-password",
	}
}

func newAccountService(users *memoryUserRepo, mailer *fakeMailer) (*service.AccountService, *token.Codec) {
	cfg := testConfig()
	codec := token.NewCodec(cfg.JWTSecret)
	svc := service.NewAccountService(users, &memoryEnterpriseRepo{}, newMemoryProfileRepo(), codec, mailer, cfg, zap.NewNop())
	return svc, codec
}

func TestCreateAccountAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	svc, codec := newAccountService(users, &fakeMailer{})

	created, err := svc.CreateIndividual(ctx, service.CreateAccountInput{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "  Asha@Example.com ",
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", created.Email)
	require.Equal(t, domain.UserTypeIndividual, created.UserType)

	result, err := svc.Login(ctx, "asha@example.com", "s3cret-pass", "")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, created.ID, result.User.ID)

	claims, err := codec.DecodeSession(result.Token)
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", claims.Email)
	require.Equal(t, domain.UserTypeIndividual, claims.UserType)
	require.Equal(t, created.ID, claims.SubjectID)
}

func TestCreateAccountRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(newMemoryUserRepo(), &fakeMailer{})

	in := service.CreateAccountInput{Email: "dup@example.com", Password: "first-pass"}
	_, err := svc.CreateIndividual(ctx, in)
	require.NoError(t, err)

	in.Password = "second-pass"
	_, err = svc.CreateIndividual(ctx, in)
	require.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

type outageUserRepo struct {
	*memoryUserRepo
	findErr error
}

func (r *outageUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return domain.User{}, r.findErr
}

func TestLoginPropagatesStoreFailures(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("server selection timeout")
	users := &outageUserRepo{memoryUserRepo: newMemoryUserRepo(), findErr: storeErr}
	cfg := testConfig()
	svc := service.NewAccountService(users, &memoryEnterpriseRepo{}, newMemoryProfileRepo(), token.NewCodec(cfg.JWTSecret), &fakeMailer{}, cfg, zap.NewNop())

	_, err := svc.Login(ctx, "someone@example.com", "whatever", "")
	require.Error(t, err)
	require.ErrorIs(t, err, storeErr)
	require.NotErrorIs(t, err, domain.ErrBadCredentials)
}

func TestCreateAdminGetsAdminType(t *testing.T) {
	ctx := context.Background()
	mailer := &fakeMailer{}
	svc, _ := newAccountService(newMemoryUserRepo(), mailer)

	created, err := svc.CreateAdmin(ctx, service.CreateAccountInput{
		FirstName: "Ops",
		Email:     "ops@example.com",
		Password:  "admin-pass",
	})
	require.NoError(t, err)
	require.Equal(t, domain.UserTypeAdmin, created.UserType)

	result, err := svc.Login(ctx, "ops@example.com", "admin-pass", domain.UserTypeAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(newMemoryUserRepo(), &fakeMailer{})

	_, err := svc.CreateIndividual(ctx, service.CreateAccountInput{Email: "known@example.com", Password: "right-pass"})
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, "nobody@example.com", "whatever", "")
	_, wrongErr := svc.Login(ctx, "known@example.com", "wrong-pass", "")

	require.ErrorIs(t, unknownErr, domain.ErrBadCredentials)
	require.ErrorIs(t, wrongErr, domain.ErrBadCredentials)
	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginChecksRequestedUserType(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(newMemoryUserRepo(), &fakeMailer{})

	_, err := svc.CreateIndividual(ctx, service.CreateAccountInput{Email: "solo@example.com", Password: "pass-word"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "solo@example.com", "pass-word", domain.UserTypeEnterprise)
	require.ErrorIs(t, err, domain.ErrUserTypeMismatch)

	_, err = svc.Login(ctx, "solo@example.com", "pass-word", domain.UserTypeIndividual)
	require.NoError(t, err)
}

func TestCreateEnterpriseStoresCompanyRecord(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	enterprises := &memoryEnterpriseRepo{}
	cfg := testConfig()
	svc := service.NewAccountService(users, enterprises, newMemoryProfileRepo(), token.NewCodec(cfg.JWTSecret), &fakeMailer{}, cfg, zap.NewNop())

	created, err := svc.CreateEnterprise(ctx, service.CreateEnterpriseInput{
		CompanyName:   "Acme Hiring",
		ContactPerson: "Priya Sharma",
		Email:         "hr@acme.test",
		Password:      "ent-pass-1",
		Industry:      "software",
	})
	require.NoError(t, err)
	require.Equal(t, domain.UserTypeEnterprise, created.UserType)
	require.Equal(t, "Priya", created.FirstName)
	require.Equal(t, "Sharma", created.LastName)

	require.Len(t, enterprises.records, 1)
	require.Equal(t, "Acme Hiring", enterprises.records[0].CompanyName)
	require.Equal(t, created.ID, enterprises.records[0].UserID.Hex())
}

// --- fakes shared across the package's tests ---

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]domain.User{}}
}

func (m *memoryUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return domain.User{}, domain.ErrUnknownAccount
	}
	return user, nil
}

func (m *memoryUserRepo) FindByID(ctx context.Context, id bson.ObjectID) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUnknownAccount
}

func (m *memoryUserRepo) Insert(ctx context.Context, user domain.User) (bson.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Email]; exists {
		return bson.ObjectID{}, domain.ErrDuplicateAccount
	}
	user.ID = bson.NewObjectID()
	m.users[user.Email] = user
	return user.ID, nil
}

func (m *memoryUserRepo) UpdatePasswordHash(ctx context.Context, email, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return domain.ErrUnknownAccount
	}
	user.PasswordHash = hash
	m.users[email] = user
	return nil
}

func (m *memoryUserRepo) List(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, nil
}

func (m *memoryUserRepo) Count(ctx context.Context, userType string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, user := range m.users {
		if userType == "" || user.UserType == userType {
			n++
		}
	}
	return n, nil
}

type memoryEnterpriseRepo struct {
	mu      sync.Mutex
	records []domain.Enterprise
}

func (m *memoryEnterpriseRepo) Insert(ctx context.Context, ent domain.Enterprise) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, ent)
	return nil
}

type memoryProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
	sections map[string]map[string]any
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{
		profiles: map[string]domain.Profile{},
		sections: map[string]map[string]any{},
	}
}

func (m *memoryProfileRepo) Insert(ctx context.Context, profile domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.Email] = profile
	return nil
}

func (m *memoryProfileRepo) FindByEmail(ctx context.Context, email string) (domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[email]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return profile, nil
}

func (m *memoryProfileRepo) UpsertSection(ctx context.Context, email string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	merged, ok := m.sections[email]
	if !ok {
		merged = map[string]any{}
		m.sections[email] = merged
	}
	for k, v := range fields {
		merged[k] = v
	}
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	fail error
	sent []sentMail
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeMailer) lastMail() (sentMail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMail{}, false
	}
	return f.sent[len(f.sent)-1], true
}
