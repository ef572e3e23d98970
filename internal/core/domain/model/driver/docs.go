// Package driver contains the Driver entity referenced by routes.
package driver
