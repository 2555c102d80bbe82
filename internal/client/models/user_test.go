package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_HasPermission(t *testing.T) {
	u := &User{Permissions: []string{"dashboard.view", "bumdes.manage"}}

	assert.True(t, u.HasPermission("bumdes.manage"))
	assert.False(t, u.HasPermission("pokdarwis.manage"))

	empty := &User{}
	assert.False(t, empty.HasPermission("dashboard.view"))
}
