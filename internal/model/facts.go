package model

import "time"

// SystemFacts holds the basic identity and OS facts of the workstation.
type SystemFacts struct {
	Hostname    string
	OSName      string
	OSVersion   string
	OSBuild     string
	InstallDate string
	LastBoot    string
}

// UserProfile represents a local user profile on the machine.
type UserProfile struct {
	Name     string
	Path     string
	LastUsed string
}

// EventLogEntry is an entry read from the system error log.
type EventLogEntry struct {
	Time    string
	Source  string
	Message string
}

// SecurityProduct represents an installed security product and its state.
type SecurityProduct struct {
	Name     string
	Enabled  bool
	UpToDate bool
}

// FirewallProfile represents the state of a firewall profile.
type FirewallProfile struct {
	Name    string
	Enabled bool
}

// Printer represents an installed printer.
type Printer struct {
	Name    string
	Driver  string
	Port    string
	Default bool
}

// Run identifies a single maintenance run.
type Run struct {
	ID        string
	Hostname  string
	StartedAt time.Time
}
