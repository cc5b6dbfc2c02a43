package finding

import "sort"

// DefaultCVSSThreshold is the CVSS score at or above which a CVE is
// significant regardless of exploit availability.
const DefaultCVSSThreshold = 7.0

// CVE is one vulnerability reported against a service by the CVE-scanning
// nmap script.
type CVE struct {
	ID               string  `json:"id"`
	CVSS             float64 `json:"cvss"`
	ExploitAvailable bool    `json:"exploit_available"`
}

// IsSignificant reports whether the finding meets the severity threshold or
// has a public exploit.
func (c CVE) IsSignificant(threshold float64) bool {
	return c.CVSS >= threshold || c.ExploitAvailable
}

// SignificantCVEs returns the significant subset of cves ordered by CVSS,
// highest first. Equal scores keep their input order. The input slice is
// not modified.
func SignificantCVEs(cves []CVE, threshold float64) []CVE {
	out := make([]CVE, 0, len(cves))
	for _, c := range cves {
		if c.IsSignificant(threshold) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CVSS > out[j].CVSS })
	return out
}
