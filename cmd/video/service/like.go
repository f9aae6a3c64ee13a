package service

import (
	"context"

	interaction "TikLite.com/cmd/interaction/service"
	"TikLite.com/cmd/model"
)

type LikeService struct {
	ctx context.Context
}

func NewLikeService(ctx context.Context) *LikeService {
	return &LikeService{ctx: ctx}
}

func (s *LikeService) LikeVideo(userId, videoId int64) (*model.RelationState, error) {
	return interaction.NewToggleService(s.ctx).Toggle(userId, videoId, model.KindVideoLike)
}

func (s *LikeService) VideoLikeState(userId, videoId int64) (*model.RelationState, error) {
	return interaction.NewToggleService(s.ctx).State(userId, videoId, model.KindVideoLike)
}

func (s *LikeService) SetVideoLike(userId, videoId int64, like bool) (*model.RelationState, error) {
	return interaction.NewToggleService(s.ctx).SetState(userId, videoId, model.KindVideoLike, like)
}
