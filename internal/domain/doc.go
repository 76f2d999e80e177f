// Package domain contains the core concepts of a URL to PDF conversion.
// Keep this package free of transport (HTTP) and infrastructure (Redis) concerns.
package domain
