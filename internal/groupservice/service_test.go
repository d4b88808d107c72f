package groupservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/splitpot/splitpot/internal/domain"
)

func TestCreate(t *testing.T) {
	members := []string{"a@x", "b@x"}
	group := domain.Group{Name: "trip", Members: members}

	testCases := []struct {
		name          string
		members       []string
		buildStubs    func(repo *MockRepo, userRepo *MockUserRepo)
		checkResponse func(t *testing.T, res domain.Group, err error)
	}{
		{
			name:    "OK",
			members: members,
			buildStubs: func(repo *MockRepo, userRepo *MockUserRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(group)).
					Times(1).
					Return(group, nil)
				userRepo.EXPECT().AddToGroup(gomock.Any(), gomock.Eq(members), gomock.Eq("trip")).
					Times(1).
					Return(nil)
			},
			checkResponse: func(t *testing.T, res domain.Group, err error) {
				require.NoError(t, err)
				require.Equal(t, group, res)
			},
		},
		{
			name:    "TrimsMemberEmails",
			members: []string{" a@x", "b@x "},
			buildStubs: func(repo *MockRepo, userRepo *MockUserRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(group)).
					Times(1).
					Return(group, nil)
				userRepo.EXPECT().AddToGroup(gomock.Any(), gomock.Eq(members), gomock.Eq("trip")).
					Times(1).
					Return(nil)
			},
			checkResponse: func(t *testing.T, res domain.Group, err error) {
				require.NoError(t, err)
				require.Equal(t, members, res.Members)
			},
		},
		{
			name:    "Duplicate",
			members: members,
			buildStubs: func(repo *MockRepo, userRepo *MockUserRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Group{}, domain.ErrDuplicateGroup)
				userRepo.EXPECT().AddToGroup(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Group, err error) {
				require.ErrorIs(t, err, domain.ErrDuplicateGroup)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			userRepo := NewMockUserRepo(ctrl)
			tc.buildStubs(repo, userRepo)

			service := New(repo, userRepo)

			res, err := service.Create(context.Background(), "trip", tc.members)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestIsMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo, NewMockUserRepo(ctrl))

	group := domain.Group{Name: "trip", Members: []string{"a@x", "b@x"}}

	repo.EXPECT().Get(gomock.Any(), gomock.Eq("trip")).Times(2).Return(group, nil)

	ok, err := service.IsMember(context.Background(), "trip", "a@x")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = service.IsMember(context.Background(), "trip", "z@x")
	require.NoError(t, err)
	require.False(t, ok)

	repo.EXPECT().Get(gomock.Any(), gomock.Eq("nosuch")).
		Times(1).
		Return(domain.Group{}, domain.ErrGroupNotFound)

	_, err = service.IsMember(context.Background(), "nosuch", "a@x")
	require.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo, NewMockUserRepo(ctrl))

	repo.EXPECT().Get(gomock.Any(), gomock.Eq("trip")).
		Times(1).
		Return(domain.Group{Name: "trip", Members: []string{"a@x", "b@x"}}, nil)

	members, err := service.Members(context.Background(), "trip")
	require.NoError(t, err)
	require.Equal(t, []string{"a@x", "b@x"}, members)
}
