// Package cache provides the facade applications use to talk to an eviction
// engine. A Cache is built from a Registry mapping each Strategy to an engine
// and the strategy to use; asking for a strategy the registry lacks fails at
// construction. Cache is meant for a single owner, wrap it in Synchronized
// to share it between goroutines.
package cache
