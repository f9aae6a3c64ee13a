package service

import (
	"context"

	interaction "TikLite.com/cmd/interaction/service"
	"TikLite.com/cmd/model"
)

type RelationService struct {
	ctx     context.Context
	toggler *interaction.ToggleService
}

func NewRelationService(ctx context.Context) *RelationService {
	return &RelationService{ctx: ctx, toggler: interaction.NewToggleService(ctx)}
}

// Follow 关注/取关切换，返回被关注者的粉丝数
func (s *RelationService) Follow(followerId, targetId int64) (*model.RelationState, error) {
	return s.toggler.Toggle(followerId, targetId, model.KindFollow)
}

func (s *RelationService) SetFollow(followerId, targetId int64, follow bool) (*model.RelationState, error) {
	return s.toggler.SetState(followerId, targetId, model.KindFollow, follow)
}

func (s *RelationService) FollowState(viewerId, targetId int64) (*model.RelationState, error) {
	return s.toggler.State(viewerId, targetId, model.KindFollow)
}
