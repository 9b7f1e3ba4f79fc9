// Package main provides the entry point for the zonekit command line tool.
// zonekit reconciles DNS zone data from zone files, zone transfers and
// SQL-backed name servers into one canonical rendering, and computes the
// minimal dynamic-update instruction set between two zone snapshots. The
// application uses gorm for snapshot persistence and can submit updates
// either through RFC 2136 dynamic updates or the PowerDNS HTTP API.
package main
