package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigAppointmentWriters(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Can(Admin, CreateAppointment))
	assert.True(t, cfg.Can(SystemAdmin, CreateAppointment))
	assert.False(t, cfg.Can(Doctor, CreateAppointment))
	assert.False(t, cfg.Can(SuperAdmin, CreateAppointment))
	assert.True(t, cfg.Can(SystemAdmin, CancelAppointment))
	assert.False(t, cfg.Can(Doctor, CancelAppointment))
}

func TestCustomConfig(t *testing.T) {
	cfg := Config{Privileges: map[Role][]Capability{"receptionist": {CreateAppointment}}}

	assert.True(t, cfg.Valid("receptionist"))
	assert.True(t, cfg.Can("receptionist", CreateAppointment))
	assert.False(t, cfg.Can(Admin, CreateAppointment))
}

func TestCanCreate(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		creator Role
		target  Role
		want    bool
	}{
		{SuperAdmin, Admin, true},
		{SuperAdmin, SuperAdmin, false},
		{Admin, Doctor, true},
		{Admin, SystemAdmin, true},
		{Admin, Admin, false},
		{SystemAdmin, Doctor, false},
		{Admin, "janitor", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.CanCreate(tt.creator, tt.target), "%s -> %s", tt.creator, tt.target)
	}
}
