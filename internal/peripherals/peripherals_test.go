package peripherals_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/peripherals"
	"github.com/slok/wrench/internal/sysexec"
	"github.com/slok/wrench/internal/sysexec/sysexecmock"
)

func TestProviderPrinters(t *testing.T) {
	tests := map[string]struct {
		mock      func(m *sysexecmock.Runner)
		expResult []model.Printer
		expErr    bool
	}{
		"printers are parsed from query output": {
			mock: func(m *sysexecmock.Runner) {
				m.On("Run", mock.Anything, "powershell", mock.Anything, mock.Anything, mock.Anything).Once().Return(&sysexec.Result{
					Output: "Office Laser|HP Universal|IP_10.0.0.20|True\r\nPDF Writer|Microsoft Print To PDF|PORTPROMPT:|False\r\n",
				}, nil)
			},
			expResult: []model.Printer{
				{Name: "Office Laser", Driver: "HP Universal", Port: "IP_10.0.0.20", Default: true},
				{Name: "PDF Writer", Driver: "Microsoft Print To PDF", Port: "PORTPROMPT:", Default: false},
			},
		},
		"no printers yields nil": {
			mock: func(m *sysexecmock.Runner) {
				m.On("Run", mock.Anything, "powershell", mock.Anything, mock.Anything, mock.Anything).Once().Return(&sysexec.Result{Output: "\r\n"}, nil)
			},
			expResult: nil,
		},
		"non-zero exit code should fail": {
			mock: func(m *sysexecmock.Runner) {
				m.On("Run", mock.Anything, "powershell", mock.Anything, mock.Anything, mock.Anything).Once().Return(&sysexec.Result{ExitCode: 2}, nil)
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

			p, err := peripherals.NewProvider(peripherals.ProviderConfig{Exec: m})
			require.NoError(err)

			printers, err := p.Printers(context.Background())

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
				assert.Equal(test.expResult, printers)
			}

			m.AssertExpectations(t)
		})
	}
}
