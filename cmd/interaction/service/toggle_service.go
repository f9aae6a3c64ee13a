package service

import (
	"context"
	"fmt"

	"TikLite.com/cmd/interaction/dal/db"
	"TikLite.com/cmd/model"
	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// EdgeStore 关系边的存储契约
type EdgeStore interface {
	Exists(ctx context.Context, kind model.RelationKind, subjectId, objectId int64) (bool, error)
	Insert(ctx context.Context, kind model.RelationKind, subjectId, objectId int64) (int64, error)
	Delete(ctx context.Context, kind model.RelationKind, subjectId, objectId int64) (bool, int64, error)
	Count(ctx context.Context, kind model.RelationKind, objectId int64) (int64, error)
}

// Guard 同一(kind, subject, object)的toggle串行执行，返回解锁函数
type Guard interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type dbEdgeStore struct{}

func (dbEdgeStore) Exists(ctx context.Context, kind model.RelationKind, s, o int64) (bool, error) {
	return db.EdgeExists(ctx, kind, s, o)
}

func (dbEdgeStore) Insert(ctx context.Context, kind model.RelationKind, s, o int64) (int64, error) {
	return db.InsertEdge(ctx, kind, s, o)
}

func (dbEdgeStore) Delete(ctx context.Context, kind model.RelationKind, s, o int64) (bool, int64, error) {
	return db.DeleteEdge(ctx, kind, s, o)
}

func (dbEdgeStore) Count(ctx context.Context, kind model.RelationKind, o int64) (int64, error) {
	return db.GetEdgeCount(ctx, kind, o)
}

var (
	defaultGuard    Guard
	defaultProducer mq.MessageProducer
)

// Init 注入可选的分布式锁与事件生产者，均可为nil
func Init(guard Guard, producer mq.MessageProducer) {
	defaultGuard = guard
	defaultProducer = producer
}

type ToggleService struct {
	ctx      context.Context
	store    EdgeStore
	guard    Guard
	producer mq.MessageProducer
}

func NewToggleService(ctx context.Context) *ToggleService {
	return &ToggleService{
		ctx:      ctx,
		store:    dbEdgeStore{},
		guard:    defaultGuard,
		producer: defaultProducer,
	}
}

func NewToggleServiceWith(ctx context.Context, store EdgeStore, guard Guard, producer mq.MessageProducer) *ToggleService {
	return &ToggleService{ctx: ctx, store: store, guard: guard, producer: producer}
}

func (s *ToggleService) check(subjectId, objectId int64, kind model.RelationKind) error {
	if subjectId <= 0 {
		return errno.AuthorizationErr
	}
	if !kind.Valid() {
		return errno.ParamErr.WithMessage(fmt.Sprintf("unknown relation kind %q", kind))
	}
	if objectId <= 0 {
		return errno.ParamErr.WithMessage("invalid target id")
	}
	if kind == model.KindFollow && subjectId == objectId {
		return errno.ParamErr.WithMessage("cannot follow yourself")
	}
	return nil
}

// Toggle 翻转关系：存在则删除，不存在则插入，返回最终状态与计数
func (s *ToggleService) Toggle(subjectId, objectId int64, kind model.RelationKind) (*model.RelationState, error) {
	if err := s.check(subjectId, objectId, kind); err != nil {
		return nil, err
	}
	unlock := s.lock(subjectId, objectId, kind)
	defer unlock()

	exists, err := s.store.Exists(s.ctx, kind, subjectId, objectId)
	if err != nil {
		return nil, s.translate(err)
	}
	var state *model.RelationState
	if exists {
		state, err = s.remove(subjectId, objectId, kind)
	} else {
		state, err = s.add(subjectId, objectId, kind)
	}
	if err != nil {
		return nil, err
	}
	s.publish(subjectId, objectId, kind, state)
	return state, nil
}

// SetState 幂等地设置关系(like/unlike、follow/unfollow)
func (s *ToggleService) SetState(subjectId, objectId int64, kind model.RelationKind, active bool) (*model.RelationState, error) {
	if err := s.check(subjectId, objectId, kind); err != nil {
		return nil, err
	}
	unlock := s.lock(subjectId, objectId, kind)
	defer unlock()

	var state *model.RelationState
	var err error
	if active {
		state, err = s.add(subjectId, objectId, kind)
	} else {
		state, err = s.remove(subjectId, objectId, kind)
	}
	if err != nil {
		return nil, err
	}
	s.publish(subjectId, objectId, kind, state)
	return state, nil
}

// State 只读查询，未登录用户视为未建立关系
func (s *ToggleService) State(subjectId, objectId int64, kind model.RelationKind) (*model.RelationState, error) {
	if !kind.Valid() || objectId <= 0 {
		return nil, errno.ParamErr
	}
	count, err := s.store.Count(s.ctx, kind, objectId)
	if err != nil {
		return nil, s.translate(err)
	}
	state := &model.RelationState{Count: count}
	if subjectId <= 0 {
		return state, nil
	}
	if state.Active, err = s.store.Exists(s.ctx, kind, subjectId, objectId); err != nil {
		return nil, s.translate(err)
	}
	return state, nil
}

func (s *ToggleService) add(subjectId, objectId int64, kind model.RelationKind) (*model.RelationState, error) {
	count, err := s.store.Insert(s.ctx, kind, subjectId, objectId)
	if errors.Is(err, db.ErrEdgeExists) {
		// 并发插入，另一个请求已经建立了关系
		hlog.CtxInfof(s.ctx, "toggle %s %d->%d: duplicate key, already active", kind, subjectId, objectId)
		if count, err = s.store.Count(s.ctx, kind, objectId); err != nil {
			return nil, s.translate(err)
		}
		return &model.RelationState{Active: true, Count: count}, nil
	}
	if err != nil {
		return nil, s.translate(err)
	}
	return &model.RelationState{Active: true, Count: count}, nil
}

func (s *ToggleService) remove(subjectId, objectId int64, kind model.RelationKind) (*model.RelationState, error) {
	removed, count, err := s.store.Delete(s.ctx, kind, subjectId, objectId)
	if err != nil {
		return nil, s.translate(err)
	}
	if !removed {
		hlog.CtxInfof(s.ctx, "toggle %s %d->%d: edge already gone", kind, subjectId, objectId)
	}
	return &model.RelationState{Active: false, Count: count}, nil
}

func (s *ToggleService) lock(subjectId, objectId int64, kind model.RelationKind) func() {
	if s.guard == nil {
		return func() {}
	}
	unlock, err := s.guard.Lock(s.ctx, fmt.Sprintf(constants.ToggleLockKey, kind, subjectId, objectId))
	if err != nil {
		// 拿不到锁时依赖唯一索引兜底
		hlog.CtxWarnf(s.ctx, "toggle guard unavailable for %s %d->%d: %v", kind, subjectId, objectId, err)
		return func() {}
	}
	return unlock
}

func (s *ToggleService) publish(subjectId, objectId int64, kind model.RelationKind, state *model.RelationState) {
	if s.producer == nil {
		return
	}
	event := mq.NewRelationEvent(string(kind), subjectId, objectId, state.Active, state.Count)
	if err := s.producer.PublishRelationEvent(s.ctx, event); err != nil {
		hlog.CtxErrorf(s.ctx, "Failed to publish relation event: %v", err)
	}
}

func (s *ToggleService) translate(err error) error {
	if errors.Is(err, db.ErrObjectNotFound) {
		return errno.NotFoundErr
	}
	hlog.CtxErrorf(s.ctx, "relation store error: %+v", err)
	return errno.ServiceErr.WithMessage("Internal service error")
}
