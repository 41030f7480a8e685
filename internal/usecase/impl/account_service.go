package impl

import (
	"context"
	"log/slog"

	deliverycontext "postboard/internal/delivery/context"
	"postboard/internal/domain/entity"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"
	"postboard/internal/domain/service"
	"postboard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account and opens a session for it. A taken email is
// reported as such, which reveals whether an address is registered.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, domainerrors.ErrUserAlreadyExists
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, translateRepoError(err, "failed to look up email")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if errors.Is(err, service.ErrPasswordTooLong) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("Password must be at most 72 bytes")
	}
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		Email:        input.Email,
		Name:         input.Name,
		Username:     input.Username,
		Age:          input.Age,
		PasswordHash: hash,
	}

	// The account is kept even if the client goes away mid-request.
	if err := srv.userRepo.Create(context.WithoutCancel(ctx), user); err != nil {
		return nil, translateRepoError(err, "failed to create user")
	}

	token, err := srv.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User registered", slog.String("user_id", user.ID.String()))

	return &usecase.SessionOutput{User: user, Token: token}, nil
}

// Login checks the password and opens a session. Unknown email and wrong
// password are reported differently.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnknownAccount
		}

		return nil, translateRepoError(err, "failed to look up email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.String("user_id", user.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	return &usecase.SessionOutput{User: user, Token: token}, nil
}

func (srv *accountService) issue(ctx context.Context, user *entity.User) (string, error) {
	token, err := srv.tokenService.Issue(entity.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("error", err))

		return "", domainerrors.ErrSessionIssueFailed.WrapMessage(err.Error())
	}

	return token, nil
}
