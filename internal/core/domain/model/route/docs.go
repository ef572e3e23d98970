// Package route contains the Route aggregate and its optimized Plan.
package route
