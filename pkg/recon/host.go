// Package recon parses nmap reconnaissance output into host records.
//
// Parsing is fault tolerant: scans interrupted mid-write leave truncated
// XML behind, and such documents produce an empty host list plus a logged
// warning rather than an error.
package recon

import "github.com/waftester/scanreport/pkg/finding"

// HostRecord is one host that nmap reported as up.
type HostRecord struct {
	IP       string       `json:"ip"`
	Hostname string       `json:"hostname"`
	OSGuess  string       `json:"os_guess,omitempty"`
	Ports    []PortRecord `json:"ports"`
}

// PortRecord is one open port with its detected service.
type PortRecord struct {
	ID             string        `json:"id"`
	Protocol       string        `json:"protocol"`
	ServiceName    string        `json:"service_name"`
	ProductVersion string        `json:"product_version,omitempty"`
	CVEs           []finding.CVE `json:"cves,omitempty"`
}

// SignificantCVEs returns the port's CVEs that meet threshold, highest CVSS first.
func (p PortRecord) SignificantCVEs(threshold float64) []finding.CVE {
	return finding.SignificantCVEs(p.CVEs, threshold)
}

// Summary aggregates counts across a host list.
type Summary struct {
	Hosts           int `json:"hosts"`
	OpenPorts       int `json:"open_ports"`
	CVEs            int `json:"cves"`
	SignificantCVEs int `json:"significant_cves"`
}

// Summarize counts hosts, open ports and CVEs. A CVE is significant when it
// meets threshold or has a known exploit.
func Summarize(hosts []HostRecord, threshold float64) Summary {
	s := Summary{Hosts: len(hosts)}
	for _, h := range hosts {
		s.OpenPorts += len(h.Ports)
		for _, p := range h.Ports {
			s.CVEs += len(p.CVEs)
			for _, c := range p.CVEs {
				if c.IsSignificant(threshold) {
					s.SignificantCVEs++
				}
			}
		}
	}
	return s
}
