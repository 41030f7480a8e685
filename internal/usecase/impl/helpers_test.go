package impl

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"postboard/internal/domain/service"
	mockRepo "postboard/internal/mocks/repository"
	mockSvc "postboard/internal/mocks/service"
	"postboard/internal/usecase"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serviceFixtures holds the mocks shared by the use case tests.
type serviceFixtures struct {
	userRepo *mockRepo.MockUserRepository
	postRepo *mockRepo.MockPostRepository
	hasher   *mockSvc.MockPasswordHasher
	tokens   *mockSvc.MockTokenService
	media    *mockSvc.MockMediaStorage
}

func newServiceFixtures(t *testing.T) serviceFixtures {
	return serviceFixtures{
		userRepo: mockRepo.NewMockUserRepository(t),
		postRepo: mockRepo.NewMockPostRepository(t),
		hasher:   mockSvc.NewMockPasswordHasher(t),
		tokens:   mockSvc.NewMockTokenService(t),
		media:    mockSvc.NewMockMediaStorage(t),
	}
}

func (f serviceFixtures) accountService() usecase.AccountUsecase {
	return NewAccountService(AccountServiceParams{
		UserRepo:     f.userRepo,
		Hasher:       f.hasher,
		TokenService: f.tokens,
		Logger:       newDiscardLogger(),
	})
}

func (f serviceFixtures) profileService() usecase.ProfileUsecase {
	return NewProfileService(ProfileServiceParams{
		UserRepo: f.userRepo,
		PostRepo: f.postRepo,
		Media:    f.media,
		Logger:   newDiscardLogger(),
	})
}

func (f serviceFixtures) postService() usecase.PostUsecase {
	return NewPostService(PostServiceParams{
		UserRepo: f.userRepo,
		PostRepo: f.postRepo,
		Media:    f.media,
		Logger:   newDiscardLogger(),
	})
}

func newUpload(name, body string) *usecase.UploadInput {
	return &usecase.UploadInput{Filename: name, Content: strings.NewReader(body)}
}

func storedAt(name string) *service.StoredMedia {
	return &service.StoredMedia{Name: name, PublicPath: "/uploads/" + name}
}
