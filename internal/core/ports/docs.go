// Package ports declares the interfaces the application core needs from the
// outside world: repositories and the unit of work over Postgres, the route
// optimizer, the SMS sender, the event publisher and the clock.
package ports
