package impl

import (
	"context"
	"strings"
	"testing"

	"postboard/internal/domain/entity"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"
	"postboard/internal/domain/service"
	"postboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Register_Success(t *testing.T) {
	fx := newServiceFixtures(t)
	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.RegisterInput{Email: "a@x.com", Password: "pw1", Name: "A", Username: "a", Age: 20}

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("pw1").Return("hashed", nil)
	fx.userRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			assert.Equal(t, "hashed", user.PasswordHash)
			assert.Equal(t, "a", user.Username)
			assert.Equal(t, 20, user.Age)
			user.ID = userID
		}).
		Return(nil)
	fx.tokens.EXPECT().Issue(entity.Identity{UserID: userID, Email: "a@x.com"}).Return("signed", nil)

	out, err := fx.accountService().Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed", out.Token)
	assert.Equal(t, userID, out.User.ID)
	assert.NotEqual(t, "pw1", out.User.PasswordHash)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := newServiceFixtures(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(&entity.User{ID: uuid.New(), Email: "a@x.com"}, nil)

	out, err := fx.accountService().Register(ctx, &usecase.RegisterInput{Email: "a@x.com", Password: "pw"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAccountService_Register_RaceOnCreate(t *testing.T) {
	fx := newServiceFixtures(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("pw").Return("hashed", nil)
	fx.userRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(repository.ErrDuplicateEmail)

	_, err := fx.accountService().Register(ctx, &usecase.RegisterInput{Email: "a@x.com", Password: "pw"})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	fx := newServiceFixtures(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("pw").Return("", errors.New("boom"))

	_, err := fx.accountService().Register(ctx, &usecase.RegisterInput{Email: "a@x.com", Password: "pw"})

	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Register_PasswordTooLong(t *testing.T) {
	fx := newServiceFixtures(t)
	ctx := context.Background()
	long := strings.Repeat("p", 100)

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(long).Return("", service.ErrPasswordTooLong)

	_, err := fx.accountService().Register(ctx, &usecase.RegisterInput{Email: "a@x.com", Password: long})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Register_LookupFailure(t *testing.T) {
	fx := newServiceFixtures(t)
	ctx := context.Background()
	dbErr := domainerrors.NewDatabaseExecuteError(errors.New("conn reset"), "failed to find user")

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@x.com").Return(nil, dbErr)

	_, err := fx.accountService().Register(ctx, &usecase.RegisterInput{Email: "a@x.com", Password: "pw"})

	assert.ErrorIs(t, err, dbErr)
}

func TestAccountService_Login(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "hashed"}

	tests := []struct {
		name      string
		setup     func(fx serviceFixtures)
		wantErr   error
		wantToken string
	}{
		{
			name: "success",
			setup: func(fx serviceFixtures) {
				fx.userRepo.EXPECT().FindByEmail(mock.Anything, "a@x.com").Return(user, nil)
				fx.hasher.EXPECT().Check("pw1", "hashed").Return(true)
				fx.tokens.EXPECT().Issue(entity.Identity{UserID: user.ID, Email: user.Email}).Return("signed", nil)
			},
			wantToken: "signed",
		},
		{
			name: "unknown email",
			setup: func(fx serviceFixtures) {
				fx.userRepo.EXPECT().FindByEmail(mock.Anything, "a@x.com").Return(nil, repository.ErrUserNotFound)
			},
			wantErr: domainerrors.ErrUnknownAccount,
		},
		{
			name: "wrong password",
			setup: func(fx serviceFixtures) {
				fx.userRepo.EXPECT().FindByEmail(mock.Anything, "a@x.com").Return(user, nil)
				fx.hasher.EXPECT().Check("pw1", "hashed").Return(false)
			},
			wantErr: domainerrors.ErrInvalidCredentials,
		},
		{
			name: "token failure",
			setup: func(fx serviceFixtures) {
				fx.userRepo.EXPECT().FindByEmail(mock.Anything, "a@x.com").Return(user, nil)
				fx.hasher.EXPECT().Check("pw1", "hashed").Return(true)
				fx.tokens.EXPECT().Issue(mock.Anything).Return("", errors.New("sign failed"))
			},
			wantErr: domainerrors.ErrSessionIssueFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newServiceFixtures(t)
			tt.setup(fx)

			out, err := fx.accountService().Login(context.Background(), &usecase.LoginInput{Email: "a@x.com", Password: "pw1"})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, out.Token)
			assert.Equal(t, user, out.User)
		})
	}
}
