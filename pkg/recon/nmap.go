package recon

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/waftester/scanreport/pkg/finding"
)

// vulnersScript is the script id whose output carries CVE tables.
const vulnersScript = "vulners"

// unknownHost is reported when a host has neither an address nor a name.
const unknownHost = "unknown"

type nmapRun struct {
	XMLName xml.Name   `xml:"nmaprun"`
	Hosts   []nmapHost `xml:"host"`
}

type nmapHost struct {
	Status    nmapState      `xml:"status"`
	Addresses []nmapAddress  `xml:"address"`
	Hostnames []nmapHostname `xml:"hostnames>hostname"`
	Ports     []nmapPort     `xml:"ports>port"`
	OSMatches []nmapOSMatch  `xml:"os>osmatch"`
}

type nmapState struct {
	State string `xml:"state,attr"`
}

type nmapAddress struct {
	Addr     string `xml:"addr,attr"`
	AddrType string `xml:"addrtype,attr"`
}

type nmapHostname struct {
	Name string `xml:"name,attr"`
}

type nmapOSMatch struct {
	Name     string `xml:"name,attr"`
	Accuracy string `xml:"accuracy,attr"`
}

type nmapPort struct {
	Protocol string       `xml:"protocol,attr"`
	PortID   string       `xml:"portid,attr"`
	State    nmapState    `xml:"state"`
	Service  *nmapService `xml:"service"`
	Scripts  []nmapScript `xml:"script"`
}

type nmapService struct {
	Name    string `xml:"name,attr"`
	Product string `xml:"product,attr"`
	Version string `xml:"version,attr"`
}

// nmapScript models script output as exactly two table levels: one table
// per CPE, one nested table per finding.
type nmapScript struct {
	ID     string         `xml:"id,attr"`
	Tables []nmapCPETable `xml:"table"`
}

type nmapCPETable struct {
	Key     string         `xml:"key,attr"`
	Entries []nmapElemList `xml:"table"`
}

type nmapElemList struct {
	Elems []nmapElem `xml:"elem"`
}

type nmapElem struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// ParseNmapXML parses nmap XML output into host records in document order.
// Hosts that are not up and ports that are not open are dropped. Empty,
// truncated or malformed documents yield an empty list and a warning; the
// function never returns an error.
func ParseNmapXML(raw []byte, logger *slog.Logger) []HostRecord {
	logger = orDefault(logger)

	hosts, err := DecodeNmapXML(raw)
	if err != nil {
		logger.Warn("nmap XML is incomplete or malformed, continuing without host data",
			slog.Any("error", err))
		return []HostRecord{}
	}
	if len(hosts) == 0 {
		logger.Info("nmap scan contains no hosts that are up")
	}
	return hosts
}

// DecodeNmapXML is ParseNmapXML without logging. Documents that cannot be
// decoded return an empty list and an error wrapping finding.ErrParse.
func DecodeNmapXML(raw []byte) ([]HostRecord, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []HostRecord{}, fmt.Errorf("%w: empty nmap document", finding.ErrParse)
	}

	run, err := decodeRun(raw)
	if err != nil {
		return []HostRecord{}, fmt.Errorf("%w: %w", finding.ErrParse, err)
	}

	hosts := make([]HostRecord, 0, len(run.Hosts))
	for _, h := range run.Hosts {
		if h.Status.State != "up" {
			continue
		}
		hosts = append(hosts, buildHost(h))
	}
	return hosts, nil
}

// decodeRun decodes the nmaprun element and requires that nothing but
// whitespace, comments and processing instructions follows it. Appended
// scan output leaves a second, usually truncated, document behind.
func decodeRun(raw []byte) (nmapRun, error) {
	var run nmapRun
	dec := xml.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&run); err != nil {
		return nmapRun{}, err
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return run, nil
		}
		if err != nil {
			return nmapRun{}, err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return nmapRun{}, errors.New("unexpected text after </nmaprun>")
			}
		default:
			return nmapRun{}, fmt.Errorf("unexpected %T after </nmaprun>", tok)
		}
	}
}

func buildHost(h nmapHost) HostRecord {
	ip := hostAddress(h)
	rec := HostRecord{
		IP:       ip,
		Hostname: ip,
		OSGuess:  osGuess(h.OSMatches),
		Ports:    make([]PortRecord, 0, len(h.Ports)),
	}
	if len(h.Hostnames) > 0 && h.Hostnames[0].Name != "" {
		rec.Hostname = h.Hostnames[0].Name
	}

	for _, p := range h.Ports {
		if p.State.State != "open" {
			continue
		}
		rec.Ports = append(rec.Ports, buildPort(p))
	}
	return rec
}

// hostAddress prefers IPv4, then any non-MAC address, then the first
// hostname.
func hostAddress(h nmapHost) string {
	for _, a := range h.Addresses {
		if a.AddrType == "ipv4" && a.Addr != "" {
			return a.Addr
		}
	}
	for _, a := range h.Addresses {
		if a.AddrType != "mac" && a.Addr != "" {
			return a.Addr
		}
	}
	for _, n := range h.Hostnames {
		if n.Name != "" {
			return n.Name
		}
	}
	return unknownHost
}

// osGuess picks the most accurate OS match. Ties keep document order.
func osGuess(matches []nmapOSMatch) string {
	best, bestAcc := "", -1
	for _, m := range matches {
		if m.Name == "" {
			continue
		}
		acc, err := strconv.Atoi(m.Accuracy)
		if err != nil {
			acc = 0
		}
		if acc > bestAcc {
			best, bestAcc = m.Name, acc
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("%s (%d%%)", best, bestAcc)
}

func buildPort(p nmapPort) PortRecord {
	rec := PortRecord{
		ID:          p.PortID,
		Protocol:    p.Protocol,
		ServiceName: "unknown",
	}
	if p.Service != nil {
		if p.Service.Name != "" {
			rec.ServiceName = p.Service.Name
		}
		rec.ProductVersion = strings.TrimSpace(p.Service.Product + " " + p.Service.Version)
	}
	for _, s := range p.Scripts {
		if s.ID == vulnersScript {
			rec.CVEs = append(rec.CVEs, extractCVEs(s)...)
		}
	}
	return rec
}

// extractCVEs reads id, cvss and is_exploit from each finding table.
// Unknown keys are ignored and findings without an id are dropped.
func extractCVEs(s nmapScript) []finding.CVE {
	var out []finding.CVE
	for _, cpe := range s.Tables {
		for _, entry := range cpe.Entries {
			var c finding.CVE
			for _, e := range entry.Elems {
				v := strings.TrimSpace(e.Value)
				switch e.Key {
				case "id":
					c.ID = v
				case "cvss":
					c.CVSS = parseCVSS(v)
				case "is_exploit":
					c.ExploitAvailable = strings.EqualFold(v, "true")
				}
			}
			if c.ID != "" {
				out = append(out, c)
			}
		}
	}
	return out
}

// parseCVSS reads a CVSS score. Anything that is not a finite number in
// [0, 10] scores 0.
func parseCVSS(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > 10 {
		return 0
	}
	return f
}

func orDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
