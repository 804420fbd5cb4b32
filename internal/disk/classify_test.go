package disk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/wrench/internal/disk"
)

func TestClassifyCheckOutput(t *testing.T) {
	tests := map[string]struct {
		output   string
		expState disk.CheckState
	}{
		"clean volume": {
			output:   "Windows has scanned the file system and found no problems.\nNo further action is required.",
			expState: disk.CheckStateClean,
		},
		"locked volume": {
			output:   "Chkdsk cannot run because the volume is in use by another process.",
			expState: disk.CheckStateLocked,
		},
		"cannot lock drive": {
			output:   "Cannot lock current drive.",
			expState: disk.CheckStateLocked,
		},
		"case is ignored": {
			output:   "CANNOT LOCK CURRENT DRIVE.",
			expState: disk.CheckStateLocked,
		},
		"locked wins over clean": {
			output:   "found no problems earlier, but now the volume is in use by another process",
			expState: disk.CheckStateLocked,
		},
		"unrecognized output": {
			output:   "Stage 1: Examining basic file system structure ...",
			expState: disk.CheckStateUnknown,
		},
		"empty output": {
			output:   "",
			expState: disk.CheckStateUnknown,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			state := disk.ClassifyCheckOutput(test.output)
			assert.Equal(test.expState, state)
		})
	}
}

func TestCheckStateString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("clean", disk.CheckStateClean.String())
	assert.Equal("locked", disk.CheckStateLocked.String())
	assert.Equal("unknown", disk.CheckStateUnknown.String())
}
