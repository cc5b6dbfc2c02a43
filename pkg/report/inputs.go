package report

import (
	"errors"
	"fmt"

	"github.com/waftester/scanreport/pkg/finding"
	"github.com/waftester/scanreport/pkg/iohelper"
)

// InputPaths locates the payload files of one report. An empty path means
// the payload was not produced.
type InputPaths struct {
	Recon   string
	Alerts  string
	Insight string
}

// LoadInputs reads the payload files. Files that exist but cannot be read
// are reported together in an error wrapping finding.ErrIO; the payloads
// that were read are still returned.
func LoadInputs(paths InputPaths) (Inputs, error) {
	var (
		in   Inputs
		errs []error
		err  error
	)

	if in.ReconXML, err = iohelper.ReadFile(paths.Recon, iohelper.DefaultMaxInputSize); err != nil {
		errs = append(errs, fmt.Errorf("%w: nmap XML: %w", finding.ErrIO, err))
	}
	if in.AlertsJSON, err = iohelper.ReadFile(paths.Alerts, iohelper.DefaultMaxInputSize); err != nil {
		errs = append(errs, fmt.Errorf("%w: ZAP JSON: %w", finding.ErrIO, err))
	}
	if in.InsightJSON, err = iohelper.ReadFile(paths.Insight, iohelper.SmallMaxInputSize); err != nil {
		errs = append(errs, fmt.Errorf("%w: AI insight: %w", finding.ErrIO, err))
	}

	return in, errors.Join(errs...)
}
