package db

import (
	"context"

	"TikLite.com/cmd/model"
	"TikLite.com/pkg/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrUserExists   = errors.New("user name or email already registered")
	ErrUserNotFound = errors.New("user not found")
)

func CreateUser(ctx context.Context, user *model.User) error {
	if err := DB.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return ErrUserExists
		}
		return errors.Wrapf(err, "CreateUser failed, user_name=%s", user.UserName)
	}
	return nil
}

// CheckUserExists 注册前的友好校验，最终以唯一索引为准
func CheckUserExists(ctx context.Context, userName, email string) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.User{}).
		Where("user_name = ? OR email = ?", userName, email).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "check user existence failed")
	}
	return count > 0, nil
}

func take(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	if err := DB.WithContext(ctx).Where(query, arg).Take(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrapf(err, "query user by %s", query)
	}
	return user, nil
}

func GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return take(ctx, "email = ?", email)
}

func GetUserByName(ctx context.Context, userName string) (*model.User, error) {
	return take(ctx, "user_name = ?", userName)
}

func GetUserById(ctx context.Context, userId int64) (*model.User, error) {
	return take(ctx, "user_id = ?", userId)
}

// GetUsersByIds 按传入顺序返回，缺失的ID跳过
func GetUsersByIds(ctx context.Context, ids []int64) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	list := make([]*model.User, 0, len(ids))
	if err := DB.WithContext(ctx).Where("user_id IN ?", ids).Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "batch query users failed")
	}
	byId := make(map[int64]*model.User, len(list))
	for _, u := range list {
		byId[u.UserId] = u
	}
	res := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byId[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

// UpdateProfile 只更新传入的字段
func UpdateProfile(ctx context.Context, userId int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := DB.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).Updates(fields)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update user %d", userId)
	}
	if res.RowsAffected == 0 {
		// 值未变化时MySQL也返回0，需要再确认用户是否存在
		if _, err := GetUserById(ctx, userId); err != nil {
			return err
		}
	}
	return nil
}

// SearchUsers 用户名或昵称模糊匹配
func SearchUsers(ctx context.Context, keyword string, limit int) ([]*model.User, error) {
	list := make([]*model.User, 0, limit)
	like := "%" + escapeLike(keyword) + "%"
	if err := DB.WithContext(ctx).
		Where("user_name LIKE ? OR display_name LIKE ?", like, like).
		Order("follower_count DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "search users failed")
	}
	return list, nil
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
