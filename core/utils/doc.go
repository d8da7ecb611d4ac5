// Package utils provides common utility functions for the trolley application.
// It includes helper functions for type conversion used when values cross the
// snapshot boundary (coercion on serialize, typed restore on rehydrate).
package utils
