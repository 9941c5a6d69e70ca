package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mkwon-dev/user-account-service/internal/domain/entity"
	repo "github.com/mkwon-dev/user-account-service/internal/domain/repository"
	"github.com/mkwon-dev/user-account-service/pkg/helpers"
)

// Service owns the account lifecycle: creation, email certification, lookups
// with status filtering, profile updates, and login timestamping.
//
// Redis and Elasticsearch are optional; when nil the service works store-only.
type Service struct {
	Repo         repo.UserRepository
	Certifier    *CertificationService
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	CacheTTL     time.Duration

	// GenCode and NowMillis are overridable for tests.
	GenCode   func() string
	NowMillis func() int64
}

func NewService(r repo.UserRepository, certifier *CertificationService, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string, cacheTTL time.Duration) *Service {
	return &Service{
		Repo:         r,
		Certifier:    certifier,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		CacheTTL:     cacheTTL,
		GenCode:      uuid.NewString,
		NowMillis:    func() int64 { return time.Now().UnixMilli() },
	}
}

// PublicProfile is the externally visible projection of a user. It never
// carries the address or the certification code.
type PublicProfile struct {
	ID          int64             `json:"id"`
	Email       string            `json:"email"`
	Nickname    string            `json:"nickname"`
	Status      entity.UserStatus `json:"status"`
	LastLoginAt *int64            `json:"last_login_at,omitempty"`
}

func PublicProfileOf(u *entity.User) PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		Email:       u.Email,
		Nickname:    u.Nickname,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
	}
}

type CreateInput struct {
	Email    string
	Nickname string
	Address  string
}

type UpdateInput struct {
	Nickname string
	Address  string
}

func profileKey(id int64) string {
	return "user:profile:" + strconv.FormatInt(id, 10)
}

// Create registers a PENDING account with a fresh certification code and
// dispatches the verification mail. The code is generated here, never chosen
// by the caller.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.User, error) {
	if strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Nickname) == "" {
		return nil, fmt.Errorf("%w: nickname", ErrInvalidInput)
	}

	u := &entity.User{
		Email:             in.Email,
		Nickname:          in.Nickname,
		Address:           in.Address,
		Status:            entity.StatusPending,
		CertificationCode: s.GenCode(),
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	if err := s.Certifier.Send(ctx, u.Email, u.ID, u.CertificationCode); err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail returns the user only when ACTIVE. PENDING rows are reported as
// not found.
func (s *Service) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Status != entity.StatusActive {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetByID returns the user only when ACTIVE, same visibility rule as
// GetByEmail.
func (s *Service) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByIDAndStatus(id, entity.StatusActive)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// PublicProfileByID serves the public view of an ACTIVE user through the
// Redis cache. Cache failures fall through to the store.
func (s *Service) PublicProfileByID(ctx context.Context, id int64) (*PublicProfile, error) {
	if s.Redis != nil {
		var cached PublicProfile
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileKey(id), &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("profile cache read failed")
		}
		if ok {
			return &cached, nil
		}
	}

	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p := PublicProfileOf(u)
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileKey(id), p, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("profile cache write failed")
		}
	}
	return &p, nil
}

// Update mutates only the supplied fields. No status restriction: the caller
// is already authenticated as the owner by the front layer.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if in.Nickname != "" {
		u.Nickname = in.Nickname
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, u.ID)
	if u.Status == entity.StatusActive {
		_ = s.indexUser(ctx, u)
	}
	return u, nil
}

// Login stamps lastLoginAt with the current time. Deliberately permissive
// about status: the operation is an internal trusted call.
func (s *Service) Login(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	now := s.NowMillis()
	u.LastLoginAt = &now
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, u.ID)
	return u, nil
}

// VerifyEmail transitions PENDING -> ACTIVE when the supplied code matches
// the stored one. Re-verifying an already ACTIVE account with the correct
// code is a no-op success (the mail link may be clicked twice).
func (s *Service) VerifyEmail(ctx context.Context, id int64, certificationCode string) error {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.CertificationCode != certificationCode {
		return ErrCertificationMismatch
	}
	if u.Status == entity.StatusActive {
		return nil
	}

	u.Status = entity.StatusActive
	if err := s.Repo.Update(u); err != nil {
		return err
	}

	s.invalidateProfile(ctx, u.ID)
	_ = s.indexUser(ctx, u)
	return nil
}

func (s *Service) invalidateProfile(ctx context.Context, id int64) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, profileKey(id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("profile cache invalidation failed")
	}
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	b, _ := json.Marshal(PublicProfileOf(u))
	req := esapi.IndexRequest{
		Index:      s.ESUsersIndex,
		DocumentID: strconv.FormatInt(u.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

// SearchUsers performs a multi_match search on email and nickname over the
// public-view index.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]PublicProfile, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []PublicProfile{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "nickname"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source PublicProfile `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]PublicProfile, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
