package sysinfo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/sysexec"
	"github.com/slok/wrench/internal/sysexec/sysexecmock"
	"github.com/slok/wrench/internal/sysinfo"
)

func TestNewProvider(t *testing.T) {
	tests := map[string]struct {
		config sysinfo.ProviderConfig
		expErr bool
	}{
		"valid config should create provider": {
			config: sysinfo.ProviderConfig{Exec: &sysexecmock.Runner{}},
			expErr: false,
		},
		"missing exec runner should fail": {
			config: sysinfo.ProviderConfig{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			p, err := sysinfo.NewProvider(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(p)
			} else {
				require.NoError(err)
				require.NotNil(p)
			}
		})
	}
}

func TestProviderOverview(t *testing.T) {
	tests := map[string]struct {
		mock      func(m *sysexecmock.Runner)
		expResult *model.SystemFacts
		expErr    bool
	}{
		"overview output is parsed into facts": {
			mock: func(m *sysexecmock.Runner) {
				m.On("Run", mock.Anything, "powershell", mock.Anything, mock.Anything, mock.Anything).Once().Return(&sysexec.Result{
					Output: "WKS-042|Microsoft Windows 11 Pro|10.0.26100|26100|20250103|20260828\r\n",
				}, nil)
			},
			expResult: &model.SystemFacts{
				Hostname:    "WKS-042",
				OSName:      "Microsoft Windows 11 Pro",
				OSVersion:   "10.0.26100",
				OSBuild:     "26100",
				InstallDate: "20250103",
				LastBoot:    "20260828",
			},
		},
		"empty output should fail": {
			mock: func(m *sysexecmock.Runner) {
				m.On("Run", mock.Anything, "powershell", mock.Anything, mock.Anything, mock.Anything).Once().Return(&sysexec.Result{Output: "\n"}, nil)
			},
			expErr: true,
		},
		"malformed output should fail": {
			mock: func(m *sysexecmock.Runner) {
				m.On("Run", mock.Anything, "powershell", mock.Anything, mock.Anything, mock.Anything).Once().Return(&sysexec.Result{Output: "just-a-hostname\n"}, nil)
			},
			expErr: true,
		},
		"non-zero exit code should fail": {
			mock: func(m *sysexecmock.Runner) {
				m.On("Run", mock.Anything, "powershell", mock.Anything, mock.Anything, mock.Anything).Once().Return(&sysexec.Result{Output: "boom", ExitCode: 1}, nil)
			},
			expErr: true,
		},
		"exec error should propagate": {
			mock: func(m *sysexecmock.Runner) {
				m.On("Run", mock.Anything, "powershell", mock.Anything, mock.Anything, mock.Anything).Once().Return(nil, fmt.Errorf("no powershell"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := &sysexecmock.Runner{}
			test.mock(m)

			p, err := sysinfo.NewProvider(sysinfo.ProviderConfig{Exec: m})
			require.NoError(err)

			facts, err := p.Overview(context.Background())

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
				assert.Equal(test.expResult, facts)
			}

			m.AssertExpectations(t)
		})
	}
}

func TestProviderUserProfiles(t *testing.T) {
	tests := map[string]struct {
		mock      func(m *sysexecmock.Runner)
		expResult []model.UserProfile
		expErr    bool
	}{
		"profiles are parsed with names derived from paths": {
			mock: func(m *sysexecmock.Runner) {
				m.On("Run", mock.Anything, "powershell", mock.Anything, mock.Anything, mock.Anything).Once().Return(&sysexec.Result{
					Output: "C:\\Users\\alice|20260820\r\nC:\\Users\\bob|20260815\r\n",
				}, nil)
			},
			expResult: []model.UserProfile{
				{Name: "alice", Path: "C:\\Users\\alice", LastUsed: "20260820"},
				{Name: "bob", Path: "C:\\Users\\bob", LastUsed: "20260815"},
			},
		},
		"zero profiles yields an empty list, not an error": {
			mock: func(m *sysexecmock.Runner) {
				m.On("Run", mock.Anything, "powershell", mock.Anything, mock.Anything, mock.Anything).Once().Return(&sysexec.Result{Output: ""}, nil)
			},
			expResult: []model.UserProfile{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := &sysexecmock.Runner{}
			test.mock(m)

			p, err := sysinfo.NewProvider(sysinfo.ProviderConfig{Exec: m})
			require.NoError(err)

			profiles, err := p.UserProfiles(context.Background())

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
				assert.Equal(test.expResult, profiles)
			}

			m.AssertExpectations(t)
		})
	}
}

func TestProviderRecentErrors(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m := &sysexecmock.Runner{}
	m.On("Run", mock.Anything, "powershell", mock.Anything, mock.Anything, mock.Anything).Once().Return(&sysexec.Result{
		Output: "2026-08-28 10:00|disk|The device has a bad block.\n2026-08-28 09:00|DCOM|Server did not register\n",
	}, nil)

	p, err := sysinfo.NewProvider(sysinfo.ProviderConfig{Exec: m})
	require.NoError(err)

	entries, err := p.RecentErrors(context.Background())
	require.NoError(err)

	assert.Equal([]model.EventLogEntry{
		{Time: "2026-08-28 10:00", Source: "disk", Message: "The device has a bad block."},
		{Time: "2026-08-28 09:00", Source: "DCOM", Message: "Server did not register"},
	}, entries)

	m.AssertExpectations(t)
}
