// Package cache provides a time-windowed, size-bounded cache in front of
// expensive computations such as a full feature store build.
package cache
