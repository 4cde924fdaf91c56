package pagination_test

import (
	"testing"

	"github.com/SlpAus/good-night-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
)

func TestParseParamsDefaults(t *testing.T) {
	p := pagination.ParseParams("", "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestParseParamsInvalidValues(t *testing.T) {
	p := pagination.ParseParams("abc", "-5")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)

	p = pagination.ParseParams("0", "0")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestParseParamsCapsPerPage(t *testing.T) {
	p := pagination.ParseParams("2", "10000")
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, pagination.MaxPerPage, p.PerPage)
}

func TestNewMetaFirstOfTwoPages(t *testing.T) {
	meta := pagination.NewMeta(3, pagination.Params{Page: 1, PerPage: 2})

	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, int64(3), meta.TotalCount)
	assert.Equal(t, 2, meta.PerPage)
	if assert.NotNil(t, meta.NextPage) {
		assert.Equal(t, 2, *meta.NextPage)
	}
	assert.Nil(t, meta.PrevPage)
}

func TestNewMetaLastPage(t *testing.T) {
	meta := pagination.NewMeta(3, pagination.Params{Page: 2, PerPage: 2})

	assert.Equal(t, 2, meta.CurrentPage)
	assert.Nil(t, meta.NextPage)
	if assert.NotNil(t, meta.PrevPage) {
		assert.Equal(t, 1, *meta.PrevPage)
	}
}

func TestNewMetaEmpty(t *testing.T) {
	meta := pagination.NewMeta(0, pagination.Params{Page: 1, PerPage: 20})

	assert.Equal(t, 0, meta.TotalPages)
	assert.Equal(t, int64(0), meta.TotalCount)
	assert.Nil(t, meta.NextPage)
	assert.Nil(t, meta.PrevPage)
}

func TestNewMetaExactMultiple(t *testing.T) {
	meta := pagination.NewMeta(40, pagination.Params{Page: 2, PerPage: 20})

	assert.Equal(t, 2, meta.TotalPages)
	assert.Nil(t, meta.NextPage)
}
