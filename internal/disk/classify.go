package disk

import "strings"

// CheckState represents the classified outcome of a disk integrity check.
type CheckState int

const (
	// CheckStateUnknown is an output the classifier couldn't recognize.
	CheckStateUnknown CheckState = iota
	// CheckStateClean means the check found no problems.
	CheckStateClean
	// CheckStateLocked means the volume was in use and couldn't be checked;
	// the check can be scheduled for the next boot instead.
	CheckStateLocked
)

func (s CheckState) String() string {
	switch s {
	case CheckStateClean:
		return "clean"
	case CheckStateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// The repair utility reports state through free text only. The signatures are
// matched case-insensitively; locked wins over clean if both appear.
var (
	lockedSignatures = []string{
		"cannot lock current drive",
		"volume is in use by another process",
		"chkdsk cannot run because the volume is in use",
	}
	cleanSignatures = []string{
		"found no problems",
		"no further action is required",
	}
)

// ClassifyCheckOutput inspects disk-check utility output and determines
// whether the volume was locked, came back clean, or neither.
func ClassifyCheckOutput(out string) CheckState {
	lower := strings.ToLower(out)

	for _, sig := range lockedSignatures {
		if strings.Contains(lower, sig) {
			return CheckStateLocked
		}
	}
	for _, sig := range cleanSignatures {
		if strings.Contains(lower, sig) {
			return CheckStateClean
		}
	}

	return CheckStateUnknown
}
