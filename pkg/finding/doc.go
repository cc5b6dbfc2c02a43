// Package finding provides the shared vulnerability vocabulary used by the
// scan report engine: the ordinal risk level carried by web alerts, the CVE
// finding attached to reconnaissance ports, and the sentinel errors that
// classify every failure the engine can surface.
//
// Parsers build these values once per input; nothing in this package mutates
// a value after construction.
//
// Usage:
//
//	level := finding.RiskFromCode("3") // finding.RiskHigh
//	if level.IsCritical() { ... }
//
//	top := finding.SignificantCVEs(port.CVEs, finding.DefaultCVSSThreshold)
package finding
