package rcxcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetRequiresFirmware(t *testing.T) {
	firmwareTargets := map[Target]bool{
		RCX: true, RCX2: true, Scout: false, CM: false, Swan: true, Spybotics: false,
	}
	for target, want := range firmwareTargets {
		assert.Equal(t, want, target.RequiresFirmware(), target.String())
	}
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "RCX2", RCX2.String())
	assert.Equal(t, "CyberMaster", CM.String())
}
