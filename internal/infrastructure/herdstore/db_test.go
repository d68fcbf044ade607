package herdstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/jhoicas/lacteos-api/internal/domain"
)

func TestWithParseTime(t *testing.T) {
	assert.Equal(t, "u:p@tcp(h:3306)/herd?parseTime=true", withParseTime("u:p@tcp(h:3306)/herd"))
	assert.Equal(t, "u:p@tcp(h:3306)/herd?charset=utf8mb4&parseTime=true", withParseTime("u:p@tcp(h:3306)/herd?charset=utf8mb4"))
	assert.Equal(t, "u:p@tcp(h:3306)/herd?parseTime=false", withParseTime("u:p@tcp(h:3306)/herd?parseTime=false"))
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "op"))
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey, "op"), domain.ErrDuplicate)
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound, "op"), domain.ErrNotFound)

	err := translate(errors.New("timeout"), "create cow")
	assert.EqualError(t, err, "create cow: timeout")
}
