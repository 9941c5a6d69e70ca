package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mkwon-dev/user-account-service/internal/domain/entity"
	"github.com/mkwon-dev/user-account-service/internal/domain/repository"
)

// fakeUserRepo is an in-memory UserRepository. Fixtures: id=1 ACTIVE,
// id=2 PENDING with a known certification code.
type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*entity.User{}, nextID: 1}
}

func (f *fakeUserRepo) seed(u entity.User) *entity.User {
	if u.ID == 0 {
		u.ID = f.nextID
	}
	if u.ID >= f.nextID {
		f.nextID = u.ID + 1
	}
	f.users[u.ID] = &u
	return &u
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByIDAndStatus(id int64, status entity.UserStatus) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok || u.Status != status {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

type fakeSender struct {
	to      string
	subject string
	body    string
	sends   int
	err     error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = to
	f.subject = subject
	f.body = body
	f.sends++
	return nil
}

func seededRepo() *fakeUserRepo {
	repo := newFakeUserRepo()
	zero := int64(0)
	repo.seed(entity.User{
		ID: 1, Email: "bing@test.com", Nickname: "bing", Address: "seoul-1",
		Status: entity.StatusActive, CertificationCode: "aaaa-aaaa-aaaa", LastLoginAt: &zero,
	})
	repo.seed(entity.User{
		ID: 2, Email: "bong@test.com", Nickname: "bong", Address: "seoul-2",
		Status: entity.StatusPending, CertificationCode: "aaaa-aaaa-aaaa",
	})
	return repo
}

func newTestService(repo *fakeUserRepo, sender *fakeSender) *Service {
	certifier := NewCertificationService(sender, "http://localhost:8080", nil)
	return NewService(repo, certifier, nil, nil, nil, "", 0)
}

func TestService_Create(t *testing.T) {
	t.Run("creates a PENDING user with a fresh certification code", func(t *testing.T) {
		repo := seededRepo()
		sender := &fakeSender{}
		svc := newTestService(repo, sender)

		u, err := svc.Create(context.Background(), CreateInput{
			Email:    "ming@test.com",
			Nickname: "ming",
			Address:  "seoul-1",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if u.ID == 0 {
			t.Error("Create() should assign an id")
		}
		if u.Status != entity.StatusPending {
			t.Errorf("status = %s, want PENDING", u.Status)
		}
		if u.CertificationCode == "" {
			t.Error("certification code should not be empty")
		}
		if sender.to != "ming@test.com" {
			t.Errorf("mail sent to %q, want ming@test.com", sender.to)
		}
		if !strings.Contains(sender.body, u.CertificationCode) {
			t.Error("mail body should contain the certification code")
		}
	})

	t.Run("generates a distinct code per call", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo, &fakeSender{})

		a, err := svc.Create(context.Background(), CreateInput{Email: "a@test.com", Nickname: "a"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		b, err := svc.Create(context.Background(), CreateInput{Email: "b@test.com", Nickname: "b"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if a.CertificationCode == b.CertificationCode {
			t.Error("certification codes should differ between creates")
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name string
			in   CreateInput
		}{
			{"missing email", CreateInput{Nickname: "ming"}},
			{"malformed email", CreateInput{Email: "not-an-email", Nickname: "ming"}},
			{"missing nickname", CreateInput{Email: "ming@test.com"}},
		}
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				svc := newTestService(newFakeUserRepo(), &fakeSender{})
				if _, err := svc.Create(context.Background(), test.in); !errors.Is(err, ErrInvalidInput) {
					t.Errorf("Create() error = %v, want ErrInvalidInput", err)
				}
			})
		}
	})

	t.Run("surfaces the store conflict for duplicate emails", func(t *testing.T) {
		svc := newTestService(seededRepo(), &fakeSender{})
		_, err := svc.Create(context.Background(), CreateInput{Email: "bing@test.com", Nickname: "dup"})
		if !errors.Is(err, repository.ErrEmailTaken) {
			t.Errorf("Create() error = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("surfaces notification failure", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("smtp down")}
		svc := newTestService(newFakeUserRepo(), sender)
		_, err := svc.Create(context.Background(), CreateInput{Email: "ming@test.com", Nickname: "ming"})
		if !errors.Is(err, ErrNotification) {
			t.Errorf("Create() error = %v, want ErrNotification", err)
		}
	})
}

func TestService_GetByEmail(t *testing.T) {
	svc := newTestService(seededRepo(), &fakeSender{})

	t.Run("returns an ACTIVE user", func(t *testing.T) {
		u, err := svc.GetByEmail(context.Background(), "bing@test.com")
		if err != nil {
			t.Fatalf("GetByEmail() error = %v", err)
		}
		if u.Nickname != "bing" {
			t.Errorf("nickname = %q, want bing", u.Nickname)
		}
	})

	t.Run("hides a PENDING user", func(t *testing.T) {
		if _, err := svc.GetByEmail(context.Background(), "bong@test.com"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("GetByEmail() error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("reports a missing user as not found", func(t *testing.T) {
		if _, err := svc.GetByEmail(context.Background(), "nobody@test.com"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("GetByEmail() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestService_GetByID(t *testing.T) {
	svc := newTestService(seededRepo(), &fakeSender{})

	t.Run("returns an ACTIVE user", func(t *testing.T) {
		u, err := svc.GetByID(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if u.Nickname != "bing" {
			t.Errorf("nickname = %q, want bing", u.Nickname)
		}
	})

	t.Run("hides a PENDING user", func(t *testing.T) {
		if _, err := svc.GetByID(context.Background(), 2); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("GetByID() error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("reports a missing id as not found", func(t *testing.T) {
		if _, err := svc.GetByID(context.Background(), 5); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("GetByID() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestService_Update(t *testing.T) {
	t.Run("mutates only nickname and address", func(t *testing.T) {
		repo := seededRepo()
		svc := newTestService(repo, &fakeSender{})

		u, err := svc.Update(context.Background(), 1, UpdateInput{Nickname: "ming-edit", Address: "seoul-2"})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if u.Nickname != "ming-edit" || u.Address != "seoul-2" {
			t.Errorf("updated = %q/%q, want ming-edit/seoul-2", u.Nickname, u.Address)
		}
		if u.ID != 1 || u.Email != "bing@test.com" || u.Status != entity.StatusActive || u.CertificationCode != "aaaa-aaaa-aaaa" {
			t.Error("Update() must not touch id, email, status, or certification code")
		}
	})

	t.Run("keeps fields that were not supplied", func(t *testing.T) {
		repo := seededRepo()
		svc := newTestService(repo, &fakeSender{})

		u, err := svc.Update(context.Background(), 1, UpdateInput{Nickname: "only-nick"})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if u.Address != "seoul-1" {
			t.Errorf("address = %q, want unchanged seoul-1", u.Address)
		}
	})

	t.Run("works for PENDING users too", func(t *testing.T) {
		repo := seededRepo()
		svc := newTestService(repo, &fakeSender{})

		u, err := svc.Update(context.Background(), 2, UpdateInput{Address: "busan-1"})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if u.Status != entity.StatusPending || u.Address != "busan-1" {
			t.Errorf("got status=%s address=%q", u.Status, u.Address)
		}
	})

	t.Run("reports a missing id as not found", func(t *testing.T) {
		svc := newTestService(seededRepo(), &fakeSender{})
		if _, err := svc.Update(context.Background(), 5, UpdateInput{Nickname: "x"}); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Update() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestService_Login(t *testing.T) {
	t.Run("stamps lastLoginAt", func(t *testing.T) {
		repo := seededRepo()
		svc := newTestService(repo, &fakeSender{})
		svc.NowMillis = func() int64 { return 1700000000000 }

		u, err := svc.Login(context.Background(), 1)
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if u.LastLoginAt == nil || *u.LastLoginAt != 1700000000000 {
			t.Errorf("lastLoginAt = %v, want 1700000000000", u.LastLoginAt)
		}
	})

	t.Run("never decreases on repeated calls", func(t *testing.T) {
		repo := seededRepo()
		svc := newTestService(repo, &fakeSender{})

		clock := int64(1000)
		svc.NowMillis = func() int64 { clock += 500; return clock }

		first, err := svc.Login(context.Background(), 1)
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		second, err := svc.Login(context.Background(), 1)
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if *second.LastLoginAt < *first.LastLoginAt {
			t.Errorf("lastLoginAt decreased: %d -> %d", *first.LastLoginAt, *second.LastLoginAt)
		}
	})

	t.Run("does not require ACTIVE status", func(t *testing.T) {
		repo := seededRepo()
		svc := newTestService(repo, &fakeSender{})

		u, err := svc.Login(context.Background(), 2)
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if u.LastLoginAt == nil || *u.LastLoginAt <= 0 {
			t.Errorf("lastLoginAt = %v, want > 0", u.LastLoginAt)
		}
	})

	t.Run("reports a missing id as not found", func(t *testing.T) {
		svc := newTestService(seededRepo(), &fakeSender{})
		if _, err := svc.Login(context.Background(), 5); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Login() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestService_VerifyEmail(t *testing.T) {
	t.Run("activates a PENDING user with the matching code", func(t *testing.T) {
		repo := seededRepo()
		svc := newTestService(repo, &fakeSender{})

		if err := svc.VerifyEmail(context.Background(), 2, "aaaa-aaaa-aaaa"); err != nil {
			t.Fatalf("VerifyEmail() error = %v", err)
		}
		u, err := svc.GetByID(context.Background(), 2)
		if err != nil {
			t.Fatalf("GetByID() after verify error = %v", err)
		}
		if u.Status != entity.StatusActive {
			t.Errorf("status = %s, want ACTIVE", u.Status)
		}
	})

	t.Run("rejects a wrong code and stays PENDING", func(t *testing.T) {
		repo := seededRepo()
		svc := newTestService(repo, &fakeSender{})

		if err := svc.VerifyEmail(context.Background(), 2, "aaaa-aaaa-aaab"); !errors.Is(err, ErrCertificationMismatch) {
			t.Fatalf("VerifyEmail() error = %v, want ErrCertificationMismatch", err)
		}
		stored, _ := repo.GetByID(2)
		if stored.Status != entity.StatusPending {
			t.Errorf("status = %s, want PENDING after mismatch", stored.Status)
		}
	})

	t.Run("is a no-op for an already ACTIVE user with the right code", func(t *testing.T) {
		repo := seededRepo()
		svc := newTestService(repo, &fakeSender{})

		if err := svc.VerifyEmail(context.Background(), 1, "aaaa-aaaa-aaaa"); err != nil {
			t.Errorf("VerifyEmail() error = %v, want nil", err)
		}
	})

	t.Run("reports a missing id as not found", func(t *testing.T) {
		svc := newTestService(seededRepo(), &fakeSender{})
		if err := svc.VerifyEmail(context.Background(), 5, "aaaa-aaaa-aaaa"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("VerifyEmail() error = %v, want ErrUserNotFound", err)
		}
	})
}
