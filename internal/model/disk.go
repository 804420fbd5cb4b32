package model

// MediaType represents the physical media class of the system disk.
type MediaType string

const (
	// MediaRotational is a spinning hard disk.
	MediaRotational MediaType = "rotational"
	// MediaSolidState is a solid-state disk.
	MediaSolidState MediaType = "solid-state"
	// MediaUnknown is a disk whose media type could not be determined.
	MediaUnknown MediaType = "unknown"
)
