package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleStudent, true},
		{RoleTeacher, true},
		{Role(""), false},
		{Role("ADMIN"), false},
		{Role("student"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Valid())
		})
	}
}

func TestUser_CheckPassword(t *testing.T) {
	usr := User{Email: "ann.lee@test.cd", Role: RoleStudent}
	if err := usr.SetPassword("pw123456"); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}
	assert.NotEmpty(t, usr.PasswordHash)
	assert.NotEqual(t, "pw123456", string(usr.PasswordHash))

	assert.NoError(t, usr.CheckPassword("pw123456"))
	assert.Error(t, usr.CheckPassword("nope"))
}
