// Package customer contains the Customer entity. Customers are created by the
// customer catalogue; dispatch only reads them to address confirmation pings.
package customer
