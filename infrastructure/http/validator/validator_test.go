package validator

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("admin@rede.com.br"))
	assert.True(t, ValidateEmail(" Admin@Rede.com "))
	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("admin@"))
}

func TestValidateRequired(t *testing.T) {
	assert.True(t, ValidateRequired("x"))
	assert.False(t, ValidateRequired("   "))
}

func TestValidateUUID(t *testing.T) {
	assert.True(t, ValidateUUID("3f1c1e9a-8f4b-4a43-9d3a-1c2b3d4e5f60"))
	assert.False(t, ValidateUUID("store-1"))
}

func TestValidateOneOf(t *testing.T) {
	assert.True(t, ValidateOneOf("", "open", "resolved"))
	assert.True(t, ValidateOneOf("open", "open", "resolved"))
	assert.False(t, ValidateOneOf("closed", "open", "resolved"))
}

func TestQueryInt(t *testing.T) {
	q := url.Values{"page": {"3"}, "limit": {"abc"}}
	assert.Equal(t, 3, QueryInt(q, "page"))
	assert.Equal(t, 0, QueryInt(q, "limit"))
	assert.Equal(t, 0, QueryInt(q, "missing"))
}
