// Package notification models the confirmation ledger: one Notification per
// ping sent to a customer, with a fixed response deadline.
package notification
