// Package hunt fans bounded puzzle searches out over a pool of goroutines.
package hunt
