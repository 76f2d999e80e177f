// Package main provides the web2pdf command.
//
// Usage:
//
//	web2pdf serve
//	web2pdf convert https://example.com -o report -s Letter -r landscape
//
// See --help for all available options.
package main

func main() {
	Execute()
}
