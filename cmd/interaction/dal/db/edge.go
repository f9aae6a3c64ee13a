package db

import (
	"context"
	"time"

	"TikLite.com/cmd/model"
	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrEdgeExists 唯一索引冲突，说明关系已存在
	ErrEdgeExists = errors.New("relation edge already exists")
	// ErrObjectNotFound 被操作的视频/评论/用户不存在
	ErrObjectNotFound = errors.New("relation object not found")
	ErrUnknownKind    = errors.New("unknown relation kind")
)

type counterRef struct {
	table  string
	key    string
	column string
}

type edgeSchema struct {
	table      string
	subjectCol string
	objectCol  string
	// 被操作对象上的计数
	object counterRef
	// 发起者上的计数，只有关注需要
	subject *counterRef
	newRow  func(subjectId, objectId int64) interface{}
}

var schemas = map[model.RelationKind]edgeSchema{
	model.KindVideoLike: {
		table:      constants.VideoLikeTableName,
		subjectCol: "user_id",
		objectCol:  "video_id",
		object:     counterRef{constants.VideoTableName, "video_id", "like_count"},
		newRow: func(s, o int64) interface{} {
			return &model.VideoLike{UserId: s, VideoId: o, CreatedAt: time.Now()}
		},
	},
	model.KindCommentLike: {
		table:      constants.CommentLikeTableName,
		subjectCol: "user_id",
		objectCol:  "comment_id",
		object:     counterRef{constants.CommentTableName, "comment_id", "like_count"},
		newRow: func(s, o int64) interface{} {
			return &model.CommentLike{UserId: s, CommentId: o, CreatedAt: time.Now()}
		},
	},
	model.KindFollow: {
		table:      constants.FollowTableName,
		subjectCol: "follower_id",
		objectCol:  "following_id",
		object:     counterRef{constants.UserTableName, "user_id", "follower_count"},
		subject:    &counterRef{constants.UserTableName, "user_id", "following_count"},
		newRow: func(s, o int64) interface{} {
			return &model.Follow{FollowerId: s, FollowingId: o, CreatedAt: time.Now()}
		},
	},
}

func schemaOf(kind model.RelationKind) (edgeSchema, error) {
	s, ok := schemas[kind]
	if !ok {
		return edgeSchema{}, errors.Wrapf(ErrUnknownKind, "kind=%s", kind)
	}
	return s, nil
}

func (s edgeSchema) pair(tx *gorm.DB, subjectId, objectId int64) *gorm.DB {
	return tx.Table(s.table).Where(s.subjectCol+" = ? AND "+s.objectCol+" = ?", subjectId, objectId)
}

// EdgeExists 按(subject, object)查询，唯一索引保证最多一行
func EdgeExists(ctx context.Context, kind model.RelationKind, subjectId, objectId int64) (bool, error) {
	s, err := schemaOf(kind)
	if err != nil {
		return false, err
	}
	var n int64
	if err := s.pair(DB.WithContext(ctx), subjectId, objectId).Count(&n).Error; err != nil {
		return false, errors.Wrapf(err, "check %s edge %d->%d", kind, subjectId, objectId)
	}
	return n > 0, nil
}

// InsertEdge 在同一事务内写入关系并累加计数，返回写入后的计数
func InsertEdge(ctx context.Context, kind model.RelationKind, subjectId, objectId int64) (int64, error) {
	s, err := schemaOf(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	err = DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s.newRow(subjectId, objectId)).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return ErrEdgeExists
			}
			return errors.Wrapf(err, "insert %s edge %d->%d", kind, subjectId, objectId)
		}
		if err := bump(tx, s.object, objectId, "+ 1"); err != nil {
			return err
		}
		if s.subject != nil {
			if err := bump(tx, *s.subject, subjectId, "+ 1"); err != nil {
				return err
			}
		}
		c, err := readCounter(tx, s.object, objectId)
		count = c
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteEdge 删除关系，不存在时为空操作；只有真正删除了行才扣减计数(不低于0)
func DeleteEdge(ctx context.Context, kind model.RelationKind, subjectId, objectId int64) (removed bool, count int64, err error) {
	s, err := schemaOf(kind)
	if err != nil {
		return false, 0, err
	}
	err = DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(s.subjectCol+" = ? AND "+s.objectCol+" = ?", subjectId, objectId).Delete(s.newRow(0, 0))
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete %s edge %d->%d", kind, subjectId, objectId)
		}
		removed = res.RowsAffected > 0
		if removed {
			if err := decrement(tx, s.object, objectId); err != nil {
				return err
			}
			if s.subject != nil {
				if err := decrement(tx, *s.subject, subjectId); err != nil {
					return err
				}
			}
		}
		c, err := readCounter(tx, s.object, objectId)
		count = c
		return err
	})
	if err != nil {
		return false, 0, err
	}
	return removed, count, nil
}

// GetEdgeCount 读取对象上的权威计数
func GetEdgeCount(ctx context.Context, kind model.RelationKind, objectId int64) (int64, error) {
	s, err := schemaOf(kind)
	if err != nil {
		return 0, err
	}
	return readCounter(DB.WithContext(ctx), s.object, objectId)
}

func bump(tx *gorm.DB, c counterRef, id int64, delta string) error {
	res := tx.Table(c.table).Where(c.key+" = ?", id).UpdateColumn(c.column, gorm.Expr(c.column+" "+delta))
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update %s.%s of %d", c.table, c.column, id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrObjectNotFound, "%s %d", c.table, id)
	}
	return nil
}

func decrement(tx *gorm.DB, c counterRef, id int64) error {
	res := tx.Table(c.table).Where(c.key+" = ?", id).UpdateColumn(c.column, gorm.Expr("GREATEST("+c.column+" - 1, 0)"))
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update %s.%s of %d", c.table, c.column, id)
	}
	return nil
}

func readCounter(tx *gorm.DB, c counterRef, id int64) (int64, error) {
	counts := make([]int64, 0, 1)
	if err := tx.Table(c.table).Where(c.key+" = ?", id).Pluck(c.column, &counts).Error; err != nil {
		return 0, errors.Wrapf(err, "read %s.%s of %d", c.table, c.column, id)
	}
	if len(counts) == 0 {
		return 0, errors.Wrapf(ErrObjectNotFound, "%s %d", c.table, id)
	}
	return counts[0], nil
}
