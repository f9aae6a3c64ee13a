package database

import (
	"errors"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(pkgerrors.Wrap(gorm.ErrDuplicatedKey, "insert follow")))
	assert.True(t, IsDuplicateKey(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, IsDuplicateKey(&mysqldriver.MySQLError{Number: 1213, Message: "Deadlock"}))
	assert.False(t, IsDuplicateKey(errors.New("boom")))
}
